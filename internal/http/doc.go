// Package http provides HTTP handlers and middleware for the conference API.
//
// The router exposes the following endpoints:
//   - POST /sessions: issues a bearer token. Body: {"username","password"}.
//     Response: {"token","expires_at","principal":{"username","permission"}}.
//   - POST /registrations: self-service attendee signup exchanging the
//     `userDTO` payload defined in user_handler.go.
//   - GET /users, POST /users, GET /users/{username}: account endpoints.
//     Listing and creation with arbitrary permission levels require an
//     organizer token.
//   - GET /speakers/available?start=RFC3339: organizer query for speakers
//     free during the one-hour slot beginning at `start`.
//   - GET /rooms, POST /rooms, GET /rooms/{code}: room catalog endpoints
//     exchanging the `roomDTO` payload defined in room_handler.go.
//   - POST /rooms/suggestions: organizer search for rooms free at a start
//     time, optionally narrowed to an exact feature set. Falls back to all
//     free rooms with `exact_match=false` when no room matches the features.
//   - GET /events, POST /events, GET /events/{name}, DELETE /events/{name}:
//     event endpoints. Creation dispatches on the request's `type` field
//     (party, talk, discussion) and enforces scheduling conflict rules.
//   - PUT /events/{name}/capacity: organizer capacity change.
//   - POST /events/{name}/enrollment, DELETE /events/{name}/enrollment:
//     enroll or withdraw the requesting principal.
//   - PUT /events/{name}/speaker: replace the speaker of a talk.
//   - POST /events/{name}/speakers, DELETE /events/{name}/speakers: add or
//     remove a discussion speaker.
//   - GET /events/{name}/fill: organizer query for a single event's fill
//     percentage.
//   - GET /schedule, GET /schedule/report, GET /schedule/mine: chronological
//     day-grouped calendar views, as JSON, plain text, or filtered to the
//     requesting principal's enrollments.
//   - GET /statistics, GET /statistics/report: organizer-only aggregate
//     queries, as JSON or plain text.
//   - GET /snapshots, POST /snapshots: organizer snapshot persistence.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
