// Package persistence writes files durably: atomic replacement through a
// synced temp file, synced backups, and an advisory lock on the store.
package persistence

import (
	"os"
	"path/filepath"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
)

// WriteFile replaces path with data. The data is written to a temp file in
// the same directory, synced, and renamed over path, so readers see either
// the old or the new content.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", tempPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("sync", tempPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("close", tempPath, err)
	}
	if err := os.Chmod(tempPath, mode(path)); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("chmod", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("move", path, err)
	}
	syncDir(dir)
	return nil
}

// Backup copies the current content of path to path+suffix and syncs it. It
// returns the backup path, or "" with a nil error when path does not exist.
func Backup(path, suffix string) (string, error) {
	if suffix == "" {
		suffix = constants.BackupSuffix
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}

	backup := path + suffix
	f, err := os.OpenFile(backup, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode(path))
	if err != nil {
		return "", errors.WrapIO("create", backup, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", errors.WrapIO("write", backup, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return "", errors.WrapIO("sync", backup, err)
	}
	if err := f.Close(); err != nil {
		return "", errors.WrapIO("close", backup, err)
	}
	syncDir(filepath.Dir(backup))
	return backup, nil
}

// mode returns the permissions of an existing file, or the default.
func mode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return constants.FilePermissions
}

// syncDir makes a rename in dir durable. Not every platform supports
// syncing a directory, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
