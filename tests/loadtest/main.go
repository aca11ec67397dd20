package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:8095"
	numWorkers   = 50
	testDuration = 10 * time.Second
)

var (
	variants = []string{"timer", "duration", "clock"}
	controls = []string{"start", "pause", "reset", "add-time"}
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== ShowTimer Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if i == 29 {
			fmt.Println("FAILED: server not ready")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// displays poll every variant, mostly served from the view cache
	fmt.Println("\n--- Phase 1: Display polling (GET /timer) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doGetView(rng)
	})

	fmt.Println("\n--- Phase 2: Operator load (80% GET, 15% controls, 5% keypad) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.80:
			return doGetView(rng)
		case r < 0.95:
			return doControl(rng)
		default:
			return doKeypad(rng)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-24s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 90))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func do(endpoint string, req *http.Request, ok func(status int) bool) result {
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, !ok(resp.StatusCode)}
}

func doGetView(rng *rand.Rand) result {
	variant := variants[rng.Intn(len(variants))]
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/timer?variant=%s", baseURL, variant), nil)
	return do("GET /timer", req, func(status int) bool { return status == http.StatusOK })
}

// doControl fires a random transition; 409 is a legal answer for a transition
// that does not apply to the current state.
func doControl(rng *rand.Rand) result {
	variant := variants[rng.Intn(2)]
	control := controls[rng.Intn(len(controls))]
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/timer/%s?variant=%s", baseURL, control, variant), nil)
	return do("POST /timer/"+control, req, func(status int) bool {
		return status == http.StatusNoContent || status == http.StatusConflict
	})
}

func doKeypad(rng *rand.Rand) result {
	variant := variants[rng.Intn(len(variants))]
	stage := "alert"
	if rng.Intn(2) == 0 {
		stage = "warning"
	}

	action := map[string]interface{}{"type": "number", "value": rng.Intn(10)}
	switch rng.Intn(6) {
	case 0:
		action = map[string]interface{}{"type": "backspace"}
	case 1:
		action = map[string]interface{}{"type": "double-zero"}
	}

	data, _ := json.Marshal(action)
	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("%s/timer/keypad?variant=%s&stage=%s", baseURL, variant, stage), bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return do("POST /timer/keypad", req, func(status int) bool { return status == http.StatusOK })
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
