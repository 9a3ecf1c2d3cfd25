/*
Package streaming provides timeout-protected delivery of download
artifacts over HTTP.

# Overview

Artifact responses are large (full videos can run to gigabytes) and the
consuming client may be slow or silently gone. A plain io.Copy onto the
ResponseWriter would hold the request goroutine, the job's workspace,
and a chunk of kernel socket buffer for as long as the client cares to
dawdle. This package wraps http.ResponseWriter with timeout protection
so stalled transfers are detected and terminated instead.

# Key Features

  - Per-write timeouts: Individual write operations are bounded by configurable timeouts
  - Idle detection: Connections with no data flow are terminated after an idle period
  - Chunked writes: Large writes are split so cancellation is noticed promptly
  - Client disconnect detection: Leverages the request context for early termination
  - Progress callbacks: Optional monitoring of delivery progress

# Basic Usage

Handlers deliver a packaged artifact with the Stream function after
setting the response headers:

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(artifact.Size, 10))

	n, err := streaming.Stream(r.Context(), w, file, streaming.DefaultTimeoutWriterConfig())
	if err != nil && !errors.Is(err, streaming.ErrClientGone) {
		logging.Warn("Delivery aborted after %d bytes: %v", n, err)
	}

By the time Stream runs, headers have been sent; an error mid-transfer
cannot become an error response. Stream therefore reports what happened
and how many bytes made it out, and the handler logs and accounts for
it.

# Advanced Usage

For more control, create a TimeoutWriter directly:

	config := streaming.DefaultTimeoutWriterConfig()
	config.WriteTimeout = 60 * time.Second
	config.OnProgress = func(bytes int64, duration time.Duration) {
		logging.Debug("Delivered %d bytes in %v", bytes, duration)
	}

	tw := streaming.NewTimeoutWriter(r.Context(), w, config)
	defer tw.Close()

	_, err := io.Copy(tw, dataSource)

# Error Handling

The package defines sentinel errors for the ways a transfer ends early:

  - ErrWriteTimeout: a single write exceeded WriteTimeout, or the
    stream outlived MaxDuration. The client is too slow.
  - ErrClientGone: the request context was canceled; the client
    disconnected. Routine, not a server fault.
  - ErrStreamCanceled: the stream was shut down programmatically.

Check them with errors.Is; ErrClientGone in particular should be logged
at a quiet level since clients abandoning downloads is normal traffic.

# Thread Safety

TimeoutWriter is safe for concurrent use, though typical usage involves
a single goroutine writing the artifact. Internal state is protected by
a mutex, and the idle checker runs in its own goroutine per stream.
*/
package streaming
