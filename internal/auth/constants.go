package auth

const (
	ContextKeyUserID     = "user_id"
	ContextKeyExternalID = "external_id"

	headerAuthorization    = "Authorization"
	headerWebhookSignature = "X-Webhook-Signature"

	bearerScheme    = "bearer"
	authHeaderParts = 2

	msgMissingAuthorization  = "missing authorization header"
	msgInvalidOrExpiredToken = "invalid or expired token"
	msgUserNotAuthenticated  = "user not authenticated"
	msgInvalidUserIDCtx      = "invalid user id in context"

	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
)
