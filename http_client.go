package main

import (
	"net/http"
	"time"
)

const externalHTTPTimeout = 15 * time.Second

var externalHTTPClient = &http.Client{
	Timeout: externalHTTPTimeout,
}
