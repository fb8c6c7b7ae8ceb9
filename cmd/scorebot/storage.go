package main

import (
	"github.com/pkg/errors"
	"github.com/shinyhunt/scorebot/config"
	"github.com/shinyhunt/scorebot/render"
	"github.com/shinyhunt/scorebot/store"
	"github.com/shinyhunt/scorebot/store/datastoredb"
	"github.com/shinyhunt/scorebot/store/inmemorydb"
	"github.com/spf13/viper"
	"google.golang.org/api/option"
)

// newDocumentStorer returns the storer of the configured storage backend
func newDocumentStorer(v *viper.Viper) (storer store.DocumentStorer, err error) {
	path := v.GetString(config.StoragePathKey)

	switch backend := v.GetString(config.StorageBackendKey); backend {
	case config.JSONBackend:
		jf, err := store.NewJSONFile(path)
		if err != nil {
			return nil, err
		}

		return jf, nil
	case config.LevelDBBackend:
		ldb, err := store.NewLevelDB(name, path)
		if err != nil {
			return nil, err
		}

		return ldb, nil
	case config.DatastoreBackend:
		opts := make([]option.ClientOption, 0)
		if credentialsFile := v.GetString(config.StorageGCloudCredentialsFile); credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}

		dsdb, err := datastoredb.New(name, v.GetString(config.StorageGCloudProjectIDKey), opts...)
		if err != nil {
			return nil, err
		}

		return dsdb, nil
	case config.MemoryBackend:
		return inmemorydb.New(), nil
	default:
		return nil, errors.Errorf("unknown storage backend [%s]", backend)
	}
}

// newRenderOptions returns the summary rendering options
func newRenderOptions(v *viper.Viper) (options []render.Option, err error) {
	options = []render.Option{render.Width(v.GetInt(config.RenderBarWidthKey))}

	if v.GetBool(config.RenderBigDigitsKey) {
		digits, err := render.NewFigletDigits(v.GetString(config.RenderFontPathKey), v.GetString(config.RenderFontNameKey))
		if err != nil {
			return nil, errors.Wrap(err, "unable to set up big digits")
		}

		options = append(options, render.WithBigDigits(digits))
	}

	return options, nil
}
