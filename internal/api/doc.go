// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

/*
Package api provides the HTTP surface of the expert study.

Routes are served by chi. Study endpoints live under /api/v1 and answer with
the models.APIResponse envelope:

	GET  /api/v1/catalogue                           study articles, newest first
	GET  /api/v1/start                               session order and first article
	GET  /api/v1/article/{articleID}                 article page with recommendations
	GET  /api/v1/recommendation/{articleID}/{recID}  one recommendation
	POST /api/v1/feedback                            rate a recommendation
	GET  /api/v1/rating-count                        ratings so far and SUS unlock state
	GET  /api/v1/user-feedback                       the session's ratings
	GET  /api/v1/sus                                 questionnaire status
	POST /api/v1/sus                                 submit the questionnaire
	POST /api/v1/company                             store the participant's company
	GET  /api/v1/health/live, /api/v1/health/ready   probes
	GET  /metrics                                    Prometheus

The legacy front end's paths (/, /feedback, /sus, /get_rating_count,
/get_user_feedback, /store_company) are served alongside and return the bare
JSON objects that front end expects.

Every study route runs behind session.Manager.Middleware, which assigns the
participant a signed cookie on first visit. Feedback store errors map to
HTTP statuses in storeFailure: an open circuit becomes 503, a key the store
cannot hold becomes 400.
*/
package api
