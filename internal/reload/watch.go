package reload

import (
	"context"
	"errors"
	"hash/fnv"
	"io/fs"
	"os"
	"time"
)

// DefaultPollInterval is how often Watch stats the documents.
const DefaultPollInterval = 250 * time.Millisecond

type fileStamp struct {
	modTime time.Time
	size    int64
	exists  bool
}

func stat(path string) (fileStamp, error) {
	if path == "" {
		return fileStamp{}, nil
	}
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileStamp{}, nil
	}
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{modTime: fi.ModTime(), size: fi.Size(), exists: true}, nil
}

func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return string(b), err
}

// mtimeSlack covers filesystems that record modification times coarsely. While
// a file's mtime is this recent, an unchanged stamp does not prove unchanged
// content, so the files are read and hashed.
const mtimeSlack = 2 * time.Second

func recent(s fileStamp, now time.Time) bool {
	return s.exists && now.Sub(s.modTime) < mtimeSlack
}

func digest(modelText, diagramText string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(modelText))
	h.Write([]byte{0})
	h.Write([]byte(diagramText))
	return h.Sum64()
}

// Watch polls modelPath and diagramPath until ctx is done. Whenever the content
// of either file changes it notifies d with both texts and the next version
// number, starting after version. Read errors are passed to onErr and polling continues.
func Watch(ctx context.Context, d *Debouncer, modelPath, diagramPath string, version int64, interval time.Duration, onErr func(error)) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if onErr == nil {
		onErr = func(error) {}
	}
	lastModel, _ := stat(modelPath)
	lastDiagram, _ := stat(diagramPath)
	var lastSum uint64
	if m, err := readOptional(modelPath); err == nil {
		if dg, err := readOptional(diagramPath); err == nil {
			lastSum = digest(m, dg)
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m, err := stat(modelPath)
			if err != nil {
				onErr(err)
				continue
			}
			dg, err := stat(diagramPath)
			if err != nil {
				onErr(err)
				continue
			}
			if m == lastModel && dg == lastDiagram && !recent(m, now) && !recent(dg, now) {
				continue
			}
			lastModel, lastDiagram = m, dg

			modelText, err := readOptional(modelPath)
			if err != nil {
				onErr(err)
				continue
			}
			diagramText, err := readOptional(diagramPath)
			if err != nil {
				onErr(err)
				continue
			}
			sum := digest(modelText, diagramText)
			if sum == lastSum {
				continue
			}
			lastSum = sum
			version++
			d.Notify(Snapshot{Version: version, Model: modelText, Diagram: diagramText})
		}
	}
}
