// Package common contains shared constants and sentinel errors used across
// bookinggate components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// identity token on inbound and outbound requests.
const AccessTokenHeaderName = "access_token"

// OtpLength is the number of digits in a freshly issued one-time code.
const OtpLength = 6
