package store

import (
	"fmt"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"io/ioutil"
	"os"
	"path/filepath"
)

// JSONFile persists the document to a single file on disk. Writes go to a temporary
// file in the same directory which is then renamed over the target
type JSONFile struct {
	Path string
}

// NewJSONFile returns a JSONFile for the given path. A leading '~' is expanded to the
// home directory and the parent directory must exist
func NewJSONFile(path string) (jf *JSONFile, err error) {
	fullPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(fullPath)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to open directory [%s]", dir))
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open [%s]: [%s] is not a directory", fullPath, dir)
	}

	return &JSONFile{Path: fullPath}, nil
}

// Load reads the whole file
func (jf *JSONFile) Load() (data []byte, err error) {
	data, err = ioutil.ReadFile(jf.Path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to read [%s]", jf.Path)
	}

	return data, nil
}

// Save rewrites the whole file
func (jf *JSONFile) Save(data []byte) (err error) {
	tmp, err := ioutil.TempFile(filepath.Dir(jf.Path), filepath.Base(jf.Path)+".tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file for [%s]", jf.Path)
	}

	// Leave nothing behind if anything fails before the rename
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write [%s]", tmp.Name())
	}

	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to sync [%s]", tmp.Name())
	}

	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close [%s]", tmp.Name())
	}

	if err = os.Rename(tmp.Name(), jf.Path); err != nil {
		return errors.Wrapf(err, "failed to replace [%s]", jf.Path)
	}

	return nil
}

// Close is a no-op since the file is only held open while saving
func (jf *JSONFile) Close() (err error) {
	return nil
}
