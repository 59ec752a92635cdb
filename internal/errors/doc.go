// Package errors provides the structured error type used across dex-api.
//
// Every error carries a Code, a user-facing Message, an optional Cause and
// free-form Meta. Codes map onto HTTP statuses for the gin surface and onto
// gRPC codes for the health server.
//
// # Failure domains
//
// The resolution engine sorts failures into four groups:
//
//   - Input: a malformed identifier. Returned as InvalidArgument before any
//     network access happens.
//   - Not found: a valid identifier with no catalog entry. Callers turn
//     this into an empty result.
//   - Upstream: the catalog API was unreachable, slow, rate limited or
//     returned something undecodable (Unavailable, DeadlineExceeded,
//     ResourceExhausted, DataLoss). IsUpstream groups these.
//   - Data: the static reference dataset is malformed. The index logs it and
//     comes up empty. No error value leaves the index.
//
// # Basic Usage
//
//	err := errors.NotFoundf("species %d not found", id)
//	err := errors.Upstream(resp.StatusCode, "pokemon/25")
//
//	if err := client.Get(ctx, id); err != nil {
//	    return errors.Wrapf(err, "failed to fetch %s", id)
//	}
//
//	if errors.IsUpstream(err) {
//	    return degraded(id, err)
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("catalog.base_url", cfg.BaseURL, vb)
//	errors.ValidatePositive("cache.api_size", cfg.APISize, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
