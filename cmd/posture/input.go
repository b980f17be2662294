package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/swdee/go-posture"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// keypointFile is the on disk form of one person's keypoints.  Either the
// named keypoints map or the raw MHR70 joints list is used, YAML and JSON
// are both accepted.
type keypointFile struct {
	Keypoints map[string][3]float64 `yaml:"keypoints"`
	Joints3D  [][3]float64          `yaml:"joints_3d"`
}

// readKeypoints loads a keypoint file
func readKeypoints(path string) (*posture.KeypointSet, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("failed to read keypoints: %w", err)
	}

	var kf keypointFile

	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("failed to parse keypoints %s: %w", path, err)
	}

	switch {
	case len(kf.Keypoints) > 0:
		return posture.ParseKeypoints(kf.Keypoints)

	case len(kf.Joints3D) > 0:
		flat := make([]float32, 0, len(kf.Joints3D)*3)

		for _, j := range kf.Joints3D {
			flat = append(flat, float32(j[0]), float32(j[1]), float32(j[2]))
		}

		return posture.KeypointsFromFloat32(flat)
	}

	return nil, fmt.Errorf("keypoints %s: no keypoints or joints_3d entries", path)
}

// readFileList reads keypoint file paths from a text file, one per line.
// Blank lines and lines starting with # are skipped.
func readFileList(path string) ([]string, error) {

	f, err := os.Open(path)

	if err != nil {
		return nil, fmt.Errorf("error opening file list: %w", err)
	}

	defer f.Close()

	scanner := bufio.NewScanner(f)

	var files []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		files = append(files, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file list: %w", err)
	}

	return files, nil
}

// fileResult pairs an input file with its analysis outcome
type fileResult struct {
	File   string          `json:"filename"`
	Report *posture.Report `json:"metrics,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// analyzeFiles runs the files through the analyzer in batches drawn from
// the pool.  Unreadable files and failed analyses are reported per file.
func analyzeFiles(ctx context.Context, a *posture.Analyzer, pool *posture.BatchPool,
	files []string, log *zap.Logger) ([]fileResult, error) {

	out := make([]fileResult, len(files))

	for start := 0; start < len(files); {
		batch := pool.Get()
		idx := make([]int, 0, batch.Size())

		for ; start < len(files) && batch.Len() < batch.Size(); start++ {
			out[start].File = files[start]
			ks, err := readKeypoints(files[start])

			if err != nil {
				log.Warn("Skipping keypoint file", zap.String("file", files[start]), zap.Error(err))
				out[start].Error = err.Error()
				continue
			}

			if err := batch.Add(ks); err != nil {
				pool.Return(batch)
				return nil, err
			}

			idx = append(idx, start)
		}

		results, err := a.AnalyzeBatch(ctx, batch)
		pool.Return(batch)

		if err != nil {
			return nil, err
		}

		for _, r := range results {
			fr := &out[idx[r.Index]]

			if r.Err != nil {
				fr.Error = r.Err.Error()
				continue
			}

			fr.Report = r.Report
		}
	}

	return out, nil
}
