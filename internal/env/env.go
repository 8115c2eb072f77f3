package env

import (
	"os"
)

const (
	AWSRegion        = "AWS_REGION"
	AWSID            = "AWS_ID"
	AWSSecret        = "AWS_SECRET"
	AWSToken         = "AWS_TOKEN"
	DynamoDBEndpoint = "DYNAMODB_ENDPOINT"
	AdminSecretKey   = "ADMIN_SECRET"
	VisitorSecretKey = "VISITOR_SECRET"
	AuthRedisURL     = "AUTH_REDIS_URL"
	AuthRedisPass    = "AUTH_REDIS_PASS"
	ChatRedisURL     = "CHAT_REDIS_URL"
	ChatRedisPass    = "CHAT_REDIS_PASS"
	WebUrl           = "WEB_URL"
	AdminUrl         = "ADMIN_URL"
	EmailEndpoint    = "EMAIL_ENDPOINT"
	EmailServiceID   = "EMAIL_SERVICE_ID"
	EmailPublicKey   = "EMAIL_PUBLIC_KEY"
	EmailAcceptedTpl = "EMAIL_TEMPLATE_ACCEPTED"
	EmailRejectedTpl = "EMAIL_TEMPLATE_REJECTED"
)

var required = []string{
	AWSRegion,
	AWSID,
	AWSSecret,
	// AWSToken,
	AdminSecretKey,
	VisitorSecretKey,
	AuthRedisURL,
	ChatRedisURL,
	WebUrl,
}

// MustValidate is called from the server entrypoints once the .env file has
// been loaded. It panics on the first missing required variable.
func MustValidate() {
	for _, key := range required {
		if os.Getenv(key) == "" {
			panic("env: required environment variable not set: " + key)
		}
	}
}

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}
