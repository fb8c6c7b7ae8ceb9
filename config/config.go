// Package config provides the configuration keys, defaults and environment bindings of scorebot
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"time"
)

// Configuration keys
const (
	DebugKey               = "debug"               // Debug mode, boolean
	BotTokenKey            = "botToken"            // Slack bot token (xoxb-), string
	AppTokenKey            = "appToken"            // Slack app-level token used for socket mode (xapp-), string
	ScoreboardChannelIDKey = "scoreboardChannelID" // Channel where the scoreboard summary message lives, string
	TimeLocationKey        = "timeLocation"        // Time location of the scheduler and summary timestamps, string (Local, UTC or a tz database name)
	UserInfoCacheSizeKey   = "userInfoCacheSize"   // Number of users kept in the user info cache, int. 0 disables caching

	HealthHostKey          = "health.host"          // Bind host of the health endpoint, string
	HealthPortKey          = "health.port"          // Bind port of the health endpoint, int. 0 disables the endpoint
	HealthProbeIntervalKey = "health.probeInterval" // Interval of the liveness probe, duration

	StorageBackendKey            = "storage.backend"               // One of json, leveldb, datastore or memory
	StoragePathKey               = "storage.path"                  // Path of the json document (json) or database directory (leveldb), string
	StorageGCloudProjectIDKey    = "storage.gcloudProjectID"       // Google cloud project id (datastore), string
	StorageGCloudCredentialsFile = "storage.gcloudCredentialsFile" // Optional credentials file (datastore), string

	DraftsMaxAgeKey = "drafts.maxAge" // Drafts untouched for longer are dropped, duration. 0 disables the sweep

	RenderBarWidthKey  = "render.barWidth"  // Number of segments of the summary bars, int
	RenderBigDigitsKey = "render.bigDigits" // Render scores as ascii art, boolean
	RenderFontPathKey  = "render.fontPath"  // Optional directory of figlet fonts, string
	RenderFontNameKey  = "render.fontName"  // Optional figlet font name, string

	MessageProcessingPartitionCount       = "advanced.messageProcessingPartitionCount"       // Number of event processing workers, must be a power of two
	MessageProcessingBufferedMessageCount = "advanced.messageProcessingBufferedMessageCount" // Number of events buffered per worker
)

// Storage backends
const (
	JSONBackend      = "json"
	LevelDBBackend   = "leveldb"
	DatastoreBackend = "datastore"
	MemoryBackend    = "memory"
)

// envBindings maps configuration keys to the environment variables that can set them
var envBindings = map[string]string{
	DebugKey:               "DEBUG",
	BotTokenKey:            "SLACK_BOT_TOKEN",
	AppTokenKey:            "SLACK_APP_TOKEN",
	ScoreboardChannelIDKey: "SCOREBOARD_CHANNEL_ID",
	HealthHostKey:          "HEALTH_HOST",
	HealthPortKey:          "HEALTH_PORT",
	StorageBackendKey:      "STORAGE_BACKEND",
	StoragePathKey:         "STORAGE_PATH",
}

// NewViperWithDefaults creates a new viper instance with defaults set and environment variables bound
func NewViperWithDefaults() (v *viper.Viper) {
	v = viper.New()

	return LayerConfigWithDefaults(v)
}

// LayerConfigWithDefaults sets the defaults and environment bindings on an existing viper instance
func LayerConfigWithDefaults(v *viper.Viper) (lv *viper.Viper) {
	v.SetDefault(DebugKey, false)
	v.SetDefault(TimeLocationKey, "Local")
	v.SetDefault(UserInfoCacheSizeKey, 100)
	v.SetDefault(HealthHostKey, "127.0.0.1")
	v.SetDefault(HealthPortKey, 3000)
	v.SetDefault(HealthProbeIntervalKey, 4*time.Minute)
	v.SetDefault(StorageBackendKey, JSONBackend)
	v.SetDefault(StoragePathKey, "./scoreboard.json")
	v.SetDefault(DraftsMaxAgeKey, 6*time.Hour)
	v.SetDefault(RenderBarWidthKey, 24)
	v.SetDefault(RenderBigDigitsKey, false)
	v.SetDefault(MessageProcessingPartitionCount, 16)
	v.SetDefault(MessageProcessingBufferedMessageCount, 10)

	for key, env := range envBindings {
		v.BindEnv(key, env)
	}

	return v
}

// GetTimeLocation returns the time location configured under TimeLocationKey
func GetTimeLocation(v *viper.Viper) (timeLoc *time.Location, err error) {
	timeLocName := v.GetString(TimeLocationKey)
	timeLoc, err = time.LoadLocation(timeLocName)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load time location [%s]", timeLocName)
	}

	return timeLoc, nil
}

// Validate returns an error if a required value is missing
func Validate(v *viper.Viper) (err error) {
	for _, key := range []string{BotTokenKey, AppTokenKey, ScoreboardChannelIDKey} {
		if v.GetString(key) == "" {
			return errors.Errorf("missing required configuration [%s] (environment variable [%s])", key, envBindings[key])
		}
	}

	switch backend := v.GetString(StorageBackendKey); backend {
	case JSONBackend, LevelDBBackend, MemoryBackend:
	case DatastoreBackend:
		if v.GetString(StorageGCloudProjectIDKey) == "" {
			return errors.Errorf("missing [%s] for the [%s] storage backend", StorageGCloudProjectIDKey, backend)
		}
	default:
		return errors.Errorf("unknown storage backend [%s]", backend)
	}

	return nil
}
