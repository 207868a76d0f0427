// Package hub implements the per-poll SSE fan-out core.
//
// A mutex-guarded Registry maps poll ids to their open subscribers. The Hub wraps it with
// subscribe/publish/shutdown semantics: publishes never block on a slow peer (buffered send
// channel per subscriber, eviction when full), topics are created on first subscribe and
// deleted the moment their last subscriber leaves.
package hub
