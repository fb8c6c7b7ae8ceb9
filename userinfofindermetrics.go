package scorebot

import (
	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel/metric"
	"time"
)

// UserInfoFinderWithTelemetry implements UserInfoFinder interface with all methods wrapped
// with open telemetry metrics
type UserInfoFinderWithTelemetry struct {
	base UserInfoFinder
	methodTelemetry
}

// NewUserInfoFinderWithTelemetry returns an instance of the UserInfoFinder decorated with open telemetry timing and count metrics
func NewUserInfoFinderWithTelemetry(base UserInfoFinder, name string, meter metric.Meter) UserInfoFinderWithTelemetry {
	return UserInfoFinderWithTelemetry{base: base, methodTelemetry: newMethodTelemetry("userInfoFinder", name, meter)}
}

// GetUserInfo implements UserInfoFinder
func (_d UserInfoFinderWithTelemetry) GetUserInfo(userID string) (user *slack.User, err error) {
	defer func(since time.Time) { _d.observe("GetUserInfo", since, err) }(time.Now())

	return _d.base.GetUserInfo(userID)
}
