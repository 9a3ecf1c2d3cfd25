// Package pipeline orchestrates a download from parsed request to
// packaged artifact.
//
// A request moves through fixed stages: parse and validate the body,
// wait for a job slot, resolve source metadata, check policy limits,
// resolve the delivery quality, build the execution plan, acquire a
// scratch workspace, execute the plan, and package the output. The
// workspace is created only after every check that can reject the
// request has passed, so rejected requests leave nothing on disk. On
// any later failure the pipeline releases the workspace before
// returning; on success the caller owns the workspace and releases it
// once the artifact has been streamed.
//
// The package also owns the failure taxonomy: Describe maps any error
// produced by a stage onto an HTTP status and a caller-safe message,
// and classify feeds the per-class error counters.
package pipeline
