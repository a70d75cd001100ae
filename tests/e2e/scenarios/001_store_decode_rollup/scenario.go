package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalEntries = 4000 // Total number of unique decode events to generate
	state        = "ZZ" // A state the live simulation never produces, so seeded history stays out of the totals
)

var (
	cities  = []string{"Alpha", "Bravo", "Charlie", "Delta"}
	stores  = []string{"S-100", "S-200", "S-300", "S-400"}
	clients = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"curl/7.88.1",
	}
)

// ### End - fixed configs

type decodeEvent struct {
	ID              string            `json:"id"`
	Kind            string            `json:"kind"`
	ReceivedAt      string            `json:"receivedAt"`
	DurationMinutes float64           `json:"durationMinutes"`
	Tags            map[string]string `json:"tags"`
	Payloads        map[string]string `json:"payloads"`
}

type batchToSend struct {
	batchIndex int
	jsonData   []byte
	isOriginal bool
}

type reportRow struct {
	Key   []string `json:"key"`
	Total int64    `json:"total"`
}

type reportResult struct {
	Rows       []reportRow `json:"rows"`
	GrandTotal reportRow   `json:"grandTotal"`
	TotalRows  int         `json:"totalRows"`
}

// main runs the e2e scenario: 001_store_decode_rollup
//
// This scenario sends decode events for one synthetic state across several batches, resends some
// batches verbatim, then reads the store-decode report back.
//
// What it tests:
//   - Event batch ingestion via POST /events
//   - Duplicate event detection: a batch whose events were all seen before returns 409 Conflict
//   - Per-report stream routing and consumption into the report store
//   - Filtered report queries via GET /reports/store-decode
//
// Expected results:
//   - Every original batch returns 202 Accepted and every duplicate batch returns 409 Conflict
//   - The report shows one row per city, each holding totalEntries / len(cities) events
//   - The grand total equals totalEntries
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the rx-analytics API server
	itemsPerBatch := 20                // Number of events per batch. Original batches = totalEntries / itemsPerBatch
	parallel := 4                      // Number of concurrent batch requests to send
	totalDuplicates := 50              // Total number of duplicate batches to send across all batches
	settle := 2 * time.Second          // Time given to the stream consumers before querying

	if totalEntries%itemsPerBatch != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: TOTAL_ENTRIES (%d) must be divisible by ITEMS_PER_BATCH (%d)\n", totalEntries, itemsPerBatch)
		os.Exit(1)
	}
	batchCount := totalEntries / itemsPerBatch
	day := time.Now().UTC().Format(time.DateOnly)

	fmt.Println("Starting e2e scenario: 001_store_decode_rollup")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("DAY: %s\n", day)
	fmt.Printf("ITEMS_PER_BATCH: %d\n", itemsPerBatch)
	fmt.Printf("BATCH_COUNT: %d\n", batchCount)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TOTAL_DUPLICATES: %d\n", totalDuplicates)
	fmt.Println()

	batchesToSend := make([]batchToSend, 0, batchCount+totalDuplicates)
	for batchIndex := 1; batchIndex <= batchCount; batchIndex++ {
		jsonData, err := generateBatchJSON(batchIndex, itemsPerBatch, day)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to generate JSON for batch %d: %v\n", batchIndex, err)
			os.Exit(1)
		}
		batchesToSend = append(batchesToSend, batchToSend{batchIndex: batchIndex, jsonData: jsonData, isOriginal: true})
	}

	// Duplicates are appended after every original so they can only ever conflict.
	for i := 0; i < totalDuplicates; i++ {
		original := batchesToSend[i%batchCount]
		batchesToSend = append(batchesToSend, batchToSend{batchIndex: original.batchIndex, jsonData: original.jsonData})
	}

	fmt.Printf("Generated %d batches to send (%d original + %d duplicates)\n", len(batchesToSend), batchCount, totalDuplicates)
	fmt.Println()

	var failed int64
	var acceptedRequest int64
	var conflictedRequest int64

	send := func(batches []batchToSend) {
		workerChan := make(chan struct{}, parallel)
		var wg sync.WaitGroup
		for _, batch := range batches {
			wg.Add(1)
			workerChan <- struct{}{}

			go func(b batchToSend) {
				defer wg.Done()
				defer func() { <-workerChan }()

				statusCode, err := sendBatch(baseURL, b)
				switch {
				case err != nil:
					atomic.AddInt64(&failed, 1)
					fmt.Fprintf(os.Stderr, "ERROR: Batch %d failed: %v\n", b.batchIndex, err)
				case statusCode == http.StatusAccepted && b.isOriginal:
					atomic.AddInt64(&acceptedRequest, 1)
				case statusCode == http.StatusConflict && !b.isOriginal:
					atomic.AddInt64(&conflictedRequest, 1)
				default:
					atomic.AddInt64(&failed, 1)
					fmt.Fprintf(os.Stderr, "ERROR: Batch %d (original=%t) got unexpected status %d\n", b.batchIndex, b.isOriginal, statusCode)
				}
			}(batch)
		}
		wg.Wait()
	}

	send(batchesToSend[:batchCount])
	send(batchesToSend[batchCount:])

	fmt.Println("=== Statistics ===")
	fmt.Printf("Accepted request: %d\n", atomic.LoadInt64(&acceptedRequest))
	fmt.Printf("Conflicted request: %d\n", atomic.LoadInt64(&conflictedRequest))
	fmt.Printf("Failed request: %d\n", atomic.LoadInt64(&failed))
	if atomic.LoadInt64(&failed) > 0 {
		os.Exit(1)
	}

	time.Sleep(settle)

	result, err := queryReport(baseURL, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to query report: %v\n", err)
		os.Exit(1)
	}
	if err := verify(result); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func generateEvent(index int, day string) decodeEvent {
	city := cities[index%len(cities)]
	store := stores[(index/len(cities))%len(stores)]
	minute := index % 60
	second := (index / 60) % 60

	return decodeEvent{
		ID:              fmt.Sprintf("e2e-decode-%06d", index),
		Kind:            "decode",
		ReceivedAt:      fmt.Sprintf("%sT00:%02d:%02dZ", day, minute, second),
		DurationMinutes: float64(index%30) + 0.5,
		Tags: map[string]string{
			"state":    state,
			"city":     city,
			"store_id": store,
		},
		Payloads: map[string]string{"sale_value": strconv.Itoa(10+index%90) + ".25"},
	}
}

func generateBatchJSON(batchIndex, batchSize int, day string) ([]byte, error) {
	start := (batchIndex - 1) * batchSize
	events := make([]decodeEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		events = append(events, generateEvent(start+i, day))
	}
	return json.Marshal(events)
}

func sendBatch(baseURL string, batch batchToSend) (int, error) {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/events", bytes.NewReader(batch.jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", fmt.Sprintf("batch-%06d", batch.batchIndex))
	req.Header.Set("User-Agent", clients[batch.batchIndex%len(clients)])

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func queryReport(baseURL, day string) (*reportResult, error) {
	query := url.Values{}
	query.Set("from", day)
	query.Set("to", day)
	query.Set("state", state)
	query.Set("page_size", "50")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(baseURL + "/reports/store-decode?" + query.Encode())
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var result reportResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &result, nil
}

func verify(result *reportResult) error {
	if result.GrandTotal.Total != totalEntries {
		return fmt.Errorf("grand total = %d, want %d", result.GrandTotal.Total, totalEntries)
	}
	if result.TotalRows != len(cities) {
		return fmt.Errorf("total rows = %d, want %d", result.TotalRows, len(cities))
	}

	perCity := int64(totalEntries / len(cities))
	got := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		got = append(got, fmt.Sprint(row.Key))
		if row.Total != perCity {
			return fmt.Errorf("row %v total = %d, want %d", row.Key, row.Total, perCity)
		}
	}
	sort.Strings(got)
	fmt.Printf("Rows: %v\n", got)
	return nil
}
