package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/apikit/apiclient"
)

// Query parameter names appended by QuerySigner.
const (
	ParamAPIKey    = "api_key"
	ParamTimestamp = "timestamp"
	ParamNonce     = "nonce"
	ParamSignature = "signature"
)

// QuerySigner appends a key, a unix timestamp, a nonce and an HMAC-SHA256
// signature to the query of every call.
type QuerySigner struct {
	Key    string
	Secret []byte
	// KeyParam defaults to ParamAPIKey.
	KeyParam string
	Now      func() time.Time
	Nonce    func() string
}

func (s *QuerySigner) InjectQuery(q *apiclient.Query) error {
	if s.Key == "" || len(s.Secret) == 0 {
		return errors.New("auth: query signer needs a key and a secret")
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	nonce := uuid.NewString
	if s.Nonce != nil {
		nonce = s.Nonce
	}
	keyParam := s.KeyParam
	if keyParam == "" {
		keyParam = ParamAPIKey
	}

	ts := strconv.FormatInt(now().Unix(), 10)
	n := nonce()
	q.Add(keyParam, s.Key)
	q.Add(ParamTimestamp, ts)
	q.Add(ParamNonce, n)
	q.Add(ParamSignature, Signature(s.Secret, s.Key, ts, n))
	return nil
}

// Signature is the hex HMAC-SHA256 of key, timestamp and nonce joined by
// newlines. Servers recompute it to verify a signed query.
func Signature(secret []byte, key, timestamp, nonce string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(key + "\n" + timestamp + "\n" + nonce))
	return hex.EncodeToString(mac.Sum(nil))
}
