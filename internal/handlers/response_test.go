package handlers_test

import (
	"net/http"
	"testing"

	"github.com/localnerve/visionfolio/internal/testsupport"
)

type fiberResponse struct {
	t    *testing.T
	resp *http.Response
}

func (r *fiberResponse) status(expected int) *fiberResponse {
	r.t.Helper()
	testsupport.AssertStatus(r.t, r.resp, expected)
	return r
}

func (r *fiberResponse) decode(target any) {
	r.t.Helper()
	testsupport.ParseJSON(r.t, r.resp, target)
}
