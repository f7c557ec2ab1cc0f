package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/go-home-io/ttlock/common"
)

// Default file system config loader.
type fsConfig struct {
	location string
	logger   common.ILoggerProvider
}

// Load files from local file system.
func (c *fsConfig) Load() chan []byte {
	fileList := make([]string, 0)
	fError := filepath.Walk(c.location, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			c.logger.Warn("Failed get folder files", common.LogFileToken, path)
			return err
		}
		if f.IsDir() {
			return nil
		}
		fileList = append(fileList, path)
		return nil
	})

	if fError != nil {
		c.logger.Error("Failed to walk through files", fError)
		return nil
	}

	filesChan := make(chan []byte)

	go func() {
		for _, v := range fileList {
			if !IsValidConfigFileName(v) {
				continue
			}

			fileData, err := ioutil.ReadFile(v)
			if err != nil {
				c.logger.Error("Failed to read config file", err, common.LogFileToken, v)
				continue
			}

			c.logger.Info("Processing config file", common.LogFileToken, v)
			filesChan <- fileData
		}

		close(filesChan)
	}()

	return filesChan
}
