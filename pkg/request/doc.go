/*
Package request provides thin HTTP request helpers in two delivery styles:
callback and future. The helpers delegate entirely to net/http; they add no
retry, backoff or connection management, only a convenient completion
surface and optional call-rate admission.

Callback style hands the outcome to a completion function on its own
goroutine:

	client := request.NewClient()

	client.Get(ctx, "https://api.example.com/status", func(resp *request.Response, err error) {
		if err != nil {
			log.Printf("request failed: %v", err)
			return
		}
		fmt.Println(resp.StatusCode)
	})

Future style returns immediately with a handle the caller resolves later:

	f := client.GetAsync(ctx, "https://api.example.com/status")
	// ... other work ...
	resp, err := f.Wait(ctx)

Rate Admission:

A client built with WithThrottle drops requests that arrive faster than the
threshold, failing them with ErrRateLimited instead of sending them:

	client := request.NewClient(request.WithThrottle(time.Second))

Error Handling:

Transport failures surface unmodified from net/http. Non-2xx responses are
not errors; the caller inspects Response.StatusCode. Throttled requests
fail with an error satisfying errors.Is(err, errors.ErrRateLimited).
*/
package request
