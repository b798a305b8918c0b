// Package api provides an HTTP client for the employee REST service.
//
// # Overview
//
// The client wraps the four record operations plus a connectivity probe:
//
//	GET    {base}/                      Probe / CheckConnection
//	POST   {base}/postdata              Create
//	GET    {base}/getdata[?employee_id] List
//	PUT    {base}/putdata[/{id}]        Update
//	DELETE {base}/deletedata[/{id}]     Delete
//
// Whether the identifier travels in the path or in the body is decided by the
// employee.Schema carried on the Endpoint.
//
// # Endpoints
//
// The Client holds only transport settings. The caller owns an Endpoint and
// passes it into each call, so changing the server address never mutates
// shared client state:
//
//	client := api.NewClient(api.Options{Timeout: 5 * time.Second})
//	ep, err := api.NewEndpoint("127.0.0.1:8000", employee.Structured)
//	if err != nil {
//		return err
//	}
//	recs, err := client.List(ctx, ep, api.Filter{})
//
// # Errors
//
// Every failure is an *Error tagged with a Kind:
//
//   - KindUnreachable: the request never produced a response
//   - KindRejected: a non-2xx status (StatusCode is set)
//   - KindMalformed: a 2xx response whose body was not the expected JSON
//
// Use errors.Is with ErrUnreachable, ErrRejected or ErrMalformed to branch.
// There are no retries; a request is bounded by the client timeout and ctx.
package api
