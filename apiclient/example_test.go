package apiclient_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/kbukum/apikit/apiclient"
	"github.com/kbukum/apikit/logger"
)

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func Example() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":7,"name":"ada","path":%q}`, r.URL.Path)
	}))
	defer srv.Close()

	c, err := apiclient.New(apiclient.Config{Name: "users", RootURL: srv.URL + "/v1"},
		apiclient.WithLogger(logger.Nop()))
	if err != nil {
		fmt.Println(err)
		return
	}

	res, err := apiclient.Get[user](context.Background(), c, "/users/7")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.StatusCode, res.Data.Name)
	// Output: 200 ada
}

func ExampleClient_JSONObject() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"method":%q,"query":%q}`, r.Method, r.URL.RawQuery)
	}))
	defer srv.Close()

	c, err := apiclient.New(apiclient.Config{RootURL: srv.URL}, apiclient.WithLogger(logger.Nop()))
	if err != nil {
		fmt.Println(err)
		return
	}

	req := apiclient.NewRequest(apiclient.MethodPost, "/orders",
		apiclient.JSON(map[string]int{"qty": 2}),
		apiclient.WithQueryParam("dry_run", "true"))
	obj, err := c.JSONObject(context.Background(), req)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(obj["method"], obj["query"])
	// Output: POST dry_run=true
}
