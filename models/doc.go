// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

  - SubmitRequest: userData (any JSON object)

# Response Types

  - SuccessResponse: success
  - ListResponse: records (array of stored submissions)
  - StatsResponse: records, scored, mean, median, p10, p90, bands
  - ErrorResponse: error, message

# Domain Types

  - Submission: contact, compatibility, answers, timestamp

Submission documents what the quiz sends today. The server never decodes
records into it; stored records are passed through as raw JSON.
*/
package models
