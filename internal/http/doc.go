// Package http provides HTTP handlers and middleware for the booking funnel API.
//
// The router exposes the following endpoints:
//   - GET /state: the resolved funnel state for the visitor (page, stay dates,
//     selection, signed-in guest and the booking being confirmed).
//   - POST /search, /book, /details, /payment, /back, /home, /navigate: funnel
//     transitions. Each returns the refreshed state; /payment returns the
//     minted booking instead.
//   - GET /quote: the priced stay for the current selection, including bank
//     transfer instructions.
//   - POST /suites/{id}/inspect, /suites/{id}/select, /suites/{id}/favorite
//     and GET /favorites: suite selection and the favorites list.
//   - POST /auth/signin, /auth/signup, /auth/signout and GET/PUT /profile:
//     account endpoints exchanging the `userResponse` payload.
//   - GET /bookings, GET /bookings/active: the booking history pages. Active
//     bookings carry a check-in classification.
//   - GET /villas, GET /villas/{id}: catalog reference data.
//   - POST /concierge: the concierge conversation endpoint.
//   - GET /popups, POST /popups/{name}/dismiss: promotional popup scheduling.
//
// Every request runs through the visitor session middleware; the session
// token travels in the X-Visitor-Token header both ways.
package http
