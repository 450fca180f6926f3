// simulate drives booking traffic against a running api-server: a mix of
// availability reads and booking writes with generated names and phone
// numbers, reporting latency percentiles per operation.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/alauddinGen-Z/unilanguage/internal/config"
)

type SimConfig struct {
	APIBaseURL   string
	Duration     time.Duration
	Workers      int
	BookingRatio float64 // share of requests that POST a booking
	DaysAhead    int     // how far into the future generated dates go
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Rejected  int64 // 4xx
	Error     int64 // 5xx and transport failures
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, status int, err error) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case err != nil || status >= 500:
		atomic.AddInt64(&om.Error, 1)
	case status >= 400:
		atomic.AddInt64(&om.Rejected, 1)
	default:
		atomic.AddInt64(&om.Success, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]

	p50Idx := len(latencies) * 50 / 100
	if p50Idx >= len(latencies) {
		p50Idx = len(latencies) - 1
	}
	p50 = latencies[p50Idx]

	p95Idx := len(latencies) * 95 / 100
	if p95Idx >= len(latencies) {
		p95Idx = len(latencies) - 1
	}
	p95 = latencies[p95Idx]

	return avg, min, max, p50, p95
}

type Simulator struct {
	config  SimConfig
	client  *http.Client
	slots   OperationMetrics
	booking OperationMetrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("config: base_url=%s duration=%s workers=%d booking_ratio=%.2f",
		cfg.APIBaseURL, cfg.Duration, cfg.Workers, cfg.BookingRatio)

	gofakeit.Seed(time.Now().UnixNano())

	sim := &Simulator{
		config: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	return SimConfig{
		APIBaseURL:   getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:     getDuration("SIM_DURATION", 30*time.Second),
		Workers:      getInt("SIM_WORKERS", 10),
		BookingRatio: getFloat("SIM_BOOKING_RATIO", 0.2),
		DaysAhead:    getInt("SIM_DAYS_AHEAD", 30),
	}
}

func validateConfig(cfg SimConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if cfg.BookingRatio < 0 || cfg.BookingRatio > 1 {
		return fmt.Errorf("SIM_BOOKING_RATIO must be in [0,1]")
	}
	if cfg.DaysAhead <= 0 || cfg.DaysAhead > 90 {
		return fmt.Errorf("SIM_DAYS_AHEAD must be in (0,90]")
	}
	return nil
}

func (s *Simulator) Run() {
	deadline := time.Now().Add(s.config.Duration)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(deadline) {
				if rand.Float64() < s.config.BookingRatio {
					s.postBooking()
				} else {
					s.getSlots()
				}
			}
		}()
	}
	wg.Wait()
}

func (s *Simulator) randomCourse() string {
	return config.CourseNames[rand.Intn(len(config.CourseNames))]
}

func (s *Simulator) randomDate() string {
	day := time.Now().AddDate(0, 0, rand.Intn(s.config.DaysAhead)+1)
	return day.Format("2006-01-02")
}

func (s *Simulator) getSlots() {
	q := url.Values{}
	q.Set("date", s.randomDate())
	q.Set("course", s.randomCourse())

	start := time.Now()
	resp, err := s.client.Get(s.config.APIBaseURL + "/booking?" + q.Encode())
	latency := time.Since(start)

	status := drain(resp, err)
	s.slots.Record(latency, status, err)
}

func (s *Simulator) postBooking() {
	payload := map[string]string{
		"name":     gofakeit.Name(),
		"whatsapp": "+996" + gofakeit.Numerify("#########"),
		"course":   s.randomCourse(),
		"date":     s.randomDate(),
		"time":     fmt.Sprintf("%02d:00", 9+rand.Intn(9)),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("marshal booking payload: %v", err)
		return
	}

	start := time.Now()
	resp, err := s.client.Post(s.config.APIBaseURL+"/booking", "application/json", bytes.NewReader(body))
	latency := time.Since(start)

	status := drain(resp, err)
	s.booking.Record(latency, status, err)
}

func drain(resp *http.Response, err error) int {
	if err != nil || resp == nil {
		return 0
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return resp.StatusCode
}

func (s *Simulator) PrintReport() {
	fmt.Println()
	fmt.Println("=== simulation report ===")
	printOp("GET /booking", &s.slots)
	printOp("POST /booking", &s.booking)
}

func printOp(name string, om *OperationMetrics) {
	avg, min, max, p50, p95 := om.Stats()
	fmt.Printf("%-14s total=%d success=%d rejected=%d error=%d\n",
		name, om.Total, om.Success, om.Rejected, om.Error)
	fmt.Printf("%-14s avg=%s min=%s max=%s p50=%s p95=%s\n",
		"", avg, min, max, p50, p95)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
