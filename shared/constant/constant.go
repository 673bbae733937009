package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	RequestParamPage      = "page"
	RequestParamLimit     = "limit"
	RequestParamSortBy    = "sortBy"
	RequestParamSortOrder = "sortOrder"
	RequestParamOrderBy   = "orderBy"
)

const (
	RequestParamID     = "id"
	RequestParamRoomID = "roomId"
	RequestMaxMemory   = 10 << 20 // 10 MB
)

const (
	DefaultValuePage      = 1
	DefaultValueLimit     = 10
	DefaultValueSortBy    = "created_at"
	DefaultValueSortOrder = "DESC"
)

const (
	FieldCreatedAt  = "created_at"
	FieldCreatedBy  = "created_by"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation    = "23505"
	PqErrorCodeFkViolation        = "23503"
	PqErrorCodeExclusionViolation = "23P01"
)

const (
	DateFormat = time.RFC3339
)

const (
	OtelServiceScopeName      = "service"
	OtelRepositoryScopeName   = "repository"
	OtelHandlerScopeName      = "handler"
	OtelNotificationScopeName = "notification"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderRequestID     = "X-Request-ID"
	RequestHeaderUserAgent     = "User-Agent"
	RequestHeaderForwardedFor  = "X-Forwarded-For"
	RequestHeaderRealIP        = "X-Real-IP"

	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
)

const (
	ContentTypeJSON = "application/json"

	FormFieldPaymentProof   = "paymentProof"
	FormFieldRoomImages     = "images"
	FormFieldProfilePicture = "profilePicture"
)

const (
	StorageDirPaymentProofs = "payment_proofs"
	StorageDirRoomImages    = "room_images"
	StorageDirProfilePics   = "profile_pics"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseErrorInternal             = "Internal Server Error"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Empty = ""
)
