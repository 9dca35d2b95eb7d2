package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"RideHexmap-App/internal/domain/model"
)

const (
	defaultAggregateGoroutines = 5
	defaultAggregateChunkSize  = 50000
)

// ParallelAggregator は大量の地点をチャンクに分割し、並行に集計してからマージする
type ParallelAggregator struct {
	binner        HexBinner
	maxGoroutines int
	chunkSize     int
}

// NewParallelAggregator は新しい並行集計インスタンスを作成
func NewParallelAggregator(binner HexBinner) *ParallelAggregator {
	return &ParallelAggregator{
		binner:        binner,
		maxGoroutines: defaultAggregateGoroutines, // 同時実行数を制限
		chunkSize:     defaultAggregateChunkSize,
	}
}

type chunkResult struct {
	index  int
	result *model.HexBinResult
	err    error
}

// Aggregate はHexBinner.Aggregateと同じ結果を返す。チャンクサイズ以下の入力はそのまま逐次集計する
func (p *ParallelAggregator) Aggregate(ctx context.Context, points []model.GeoPoint, resolution int) (*model.HexBinResult, error) {
	if len(points) <= p.chunkSize {
		return p.binner.Aggregate(points, resolution)
	}
	if err := p.binner.ValidateResolution(resolution); err != nil {
		return nil, err
	}

	start := time.Now()
	chunks := (len(points) + p.chunkSize - 1) / p.chunkSize

	// セマフォを使用して同時実行数を制限
	semaphore := make(chan struct{}, p.maxGoroutines)
	results := make(chan chunkResult, chunks)
	var wg sync.WaitGroup

	for i := 0; i < chunks; i++ {
		lo := i * p.chunkSize
		hi := lo + p.chunkSize
		if hi > len(points) {
			hi = len(points)
		}

		wg.Add(1)
		go func(index int, chunk []model.GeoPoint) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results <- chunkResult{index: index, err: err}
				return
			}
			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				results <- chunkResult{index: index, err: ctx.Err()}
				return
			}
			defer func() { <-semaphore }()

			result, err := p.binner.Aggregate(chunk, resolution)
			if err != nil {
				err = fmt.Errorf("チャンク%dの集計に失敗: %w", index, err)
			}
			results <- chunkResult{index: index, result: result, err: err}
		}(i, points[lo:hi])
	}

	// 別のgoroutineでwaitしてチャンネルを閉じる
	go func() {
		wg.Wait()
		close(results)
	}()

	merged := model.NewHexBinResult(resolution)
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		merged.Merge(r.result)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	log.WithFields(log.Fields{
		"points":     len(points),
		"chunks":     chunks,
		"cells":      merged.Len(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Debug("parallel hex aggregation finished")

	return merged, nil
}
