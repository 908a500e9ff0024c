// Reelmatch - Film Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package services adapts long-running components to suture.Service.

HTTPServerService translates http.Server's blocking ListenAndServe into
Serve(ctx): canceling ctx triggers Shutdown with a bounded drain timeout, and
a listener failure is returned so the supervisor restarts it.

RebuildService owns the snapshot schedule. It optionally rebuilds on start,
then on every tick of the configured interval, with each run bounded by its
own timeout. A failed startup rebuild is returned to the supervisor, which
retries after its backoff; later failures are logged and leave the previous
snapshot in place.

Both implement fmt.Stringer so supervisor events name them "http-server" and
"rebuild-service".
*/
package services
