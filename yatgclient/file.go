package yatgclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaTgBotAPI/yacache"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaencoding"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmethods"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

// FileCacheTTL is shorter than the one hour a download path stays valid.
const FileCacheTTL = 55 * time.Minute

const fileCachePrefix = "yatgclient:file:"

// GetFile resolves a file id into its download path. With a cache configured
// the result is reused for FileCacheTTL.
//
// Example:
//
//	file, err := client.GetFile(ctx, msg.LargestPhoto().FileID)
func (c *Client) GetFile(ctx context.Context, fileID string) (*yatgtypes.File, yaerrors.Error) {
	key := fileCachePrefix + fileID

	if c.files != nil {
		file, err := c.cachedFile(ctx, key)
		if err == nil {
			return file, nil
		}

		if !errors.Is(err, yacache.ErrKeyNotFound) {
			c.log.Warnf("File cache lookup failed: %v", err)
		}
	}

	file, err := callPointer[yatgtypes.File](ctx, c, yatgmethods.NewGetFile(fileID))
	if err != nil {
		return nil, err.Wrap("[CLIENT] failed to get file")
	}

	if c.files != nil && file.FilePath != "" {
		encoded, err := yaencoding.EncodeMessagePackString(file)
		if err == nil {
			err = c.files.Set(ctx, key, encoded, FileCacheTTL)
		}

		if err != nil {
			c.log.Warnf("Failed to cache file %s: %v", fileID, err)
		}
	}

	return file, nil
}

func (c *Client) cachedFile(ctx context.Context, key string) (*yatgtypes.File, yaerrors.Error) {
	value, err := c.files.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	return yaencoding.DecodeMessagePackString[yatgtypes.File](value)
}

// FileURL is the download link of a resolved file path. It embeds the token
// and must not be shown to users.
func (c *Client) FileURL(path string) string {
	return fmt.Sprintf("%s/file/bot%s/%s", c.fileURL, c.token, path)
}

// DownloadFile fetches the content of a file by its id.
//
// Example:
//
//	data, err := client.DownloadFile(ctx, msg.Document.FileID)
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, yaerrors.Error) {
	file, yaErr := c.GetFile(ctx, fileID)
	if yaErr != nil {
		return nil, yaErr.Wrap("[CLIENT] failed to download file")
	}

	log := c.log.WithRandomRequestID().WithField(yalogger.KeyMethod, "downloadFile")

	if file.FilePath == "" {
		return nil, yaerrors.FromErrorWithLog(
			http.StatusNotFound,
			ErrFileNotDownloadable,
			"[CLIENT] failed to download file "+fileID,
			log,
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FileURL(file.FilePath), nil)
	if err != nil {
		return nil, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"[CLIENT] failed to build download request",
			log,
		)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, yaerrors.FromErrorWithLog(
			http.StatusBadGateway,
			errors.Join(ErrTransport, redact(err, c.token)),
			"[CLIENT] failed to download file "+fileID,
			log,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, yaerrors.FromStringWithLog(
			resp.StatusCode,
			fmt.Sprintf("[CLIENT] download of %s answered HTTP %d", fileID, resp.StatusCode),
			log,
		)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, yaerrors.FromErrorWithLog(
			http.StatusBadGateway,
			errors.Join(ErrTransport, err),
			"[CLIENT] failed to read file "+fileID,
			log,
		)
	}

	log.Debugf("Downloaded %s (%d bytes)", file.FilePath, len(data))

	return data, nil
}
