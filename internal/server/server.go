// Package server exposes the spectrum engine over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang/groupcache"
	"github.com/gorilla/schema"

	"github.com/alexiusacademia/gospectra/internal/export"
	"github.com/alexiusacademia/gospectra/internal/nec"
	"github.com/alexiusacademia/gospectra/internal/spectrum"
)

// DefaultCacheBytes bounds the memory held by cached spectra.
const DefaultCacheBytes = 32 << 20

// MaxSamples caps the sample count a request may ask for.
const MaxSamples = 20000

// Config configures the HTTP handler.
type Config struct {
	Logger *slog.Logger

	// CacheBytes bounds the spectrum cache, DefaultCacheBytes when <= 0.
	// Handlers created with the same size share one cache.
	CacheBytes int64
}

// spectrumQuery holds the supported query parameters. φP, φE and the
// domain default to 1.0 and 0-6 s at 1000 samples.
type spectrumQuery struct {
	Soil    string  `schema:"soil,required"`
	Zone    string  `schema:"zone,required"`
	Region  string  `schema:"region,required"`
	R       float64 `schema:"r,required"`
	I       float64 `schema:"i,required"`
	PhiP    float64 `schema:"phip"`
	PhiE    float64 `schema:"phie"`
	Start   float64 `schema:"start"`
	End     float64 `schema:"end"`
	Samples int     `schema:"samples"`
}

// paramsQuery keeps categories as labels so parse failures surface as
// nec.CategoryError rather than a conversion error.
type paramsQuery struct {
	Soil   string `schema:"soil,required"`
	Zone   string `schema:"zone,required"`
	Region string `schema:"region,required"`
}

func (q paramsQuery) site() (nec.Site, error) {
	soil, err := nec.ParseSoilType(q.Soil)
	if err != nil {
		return nec.Site{}, err
	}
	zone, err := nec.ParseZone(q.Zone)
	if err != nil {
		return nec.Site{}, err
	}
	region, err := nec.ParseRegion(q.Region)
	if err != nil {
		return nec.Site{}, err
	}
	return nec.Resolve(soil, zone, region)
}

// queryError marks a malformed query string.
type queryError struct {
	err error
}

func (e *queryError) Error() string { return "invalid query: " + e.err.Error() }
func (e *queryError) Unwrap() error { return e.err }

func (s *server) decode(dst any, r *http.Request) error {
	if err := s.decoder.Decode(dst, r.URL.Query()); err != nil {
		return &queryError{err: err}
	}
	return nil
}

var (
	cacheMu sync.Mutex
	caches  = map[int64]*groupcache.Group{}
)

// spectra returns the process-wide group for a cache size. groupcache
// names are global, so handlers asking for the same size share a group.
func spectra(cacheBytes int64) *groupcache.Group {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if g, ok := caches[cacheBytes]; ok {
		return g
	}
	g := groupcache.NewGroup(fmt.Sprintf("spectrum-%d", cacheBytes), cacheBytes, groupcache.GetterFunc(
		func(ctx context.Context, key string, dest groupcache.Sink) error {
			in, err := decodeKey(key)
			if err != nil {
				return err
			}
			res, err := spectrum.Compute(in)
			if err != nil {
				return err
			}
			b, err := json.Marshal(res)
			if err != nil {
				return err
			}
			return dest.SetBytes(b)
		}))
	caches[cacheBytes] = g
	return g
}

type server struct {
	log     *slog.Logger
	decoder *schema.Decoder
	cache   *groupcache.Group
}

// New returns the HTTP handler of the spectrum service.
func New(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.CacheBytes <= 0 {
		cfg.CacheBytes = DefaultCacheBytes
	}

	s := &server{
		log:     cfg.Logger,
		decoder: schema.NewDecoder(),
		cache:   spectra(cfg.CacheBytes),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/spectrum", s.get(s.spectrumJSON))
	mux.HandleFunc("/spectrum/etabs", s.get(s.spectrumETABS))
	mux.HandleFunc("/spectrum/table", s.get(s.spectrumTable))
	mux.HandleFunc("/params", s.get(s.params))
	mux.HandleFunc("/soh/up", s.get(up))

	return s.logRequests(mux)
}

// get rejects anything but GET and HEAD.
func (s *server) get(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func up(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *server) params(w http.ResponseWriter, r *http.Request) {
	var q paramsQuery
	if err := s.decode(&q, r); err != nil {
		s.fail(w, err)
		return
	}
	site, err := q.site()
	if err != nil {
		s.fail(w, err)
		return
	}

	t0, tc, tl := spectrum.CharacteristicPeriods(site.Amp.Fa, site.Amp.Fd, site.Amp.Fs)
	writeJSON(w, struct {
		nec.Site
		T0 float64 `json:"t0"`
		Tc float64 `json:"tc"`
		TL float64 `json:"tl"`
	}{site, t0, tc, tl})
}

// result decodes the query and returns the cached spectrum for it.
func (s *server) result(r *http.Request) (*spectrum.Result, error) {
	q := spectrumQuery{PhiP: 1, PhiE: 1}
	d := spectrum.DefaultDomain()
	q.Start, q.End, q.Samples = d.Start, d.End, d.Samples

	if err := s.decode(&q, r); err != nil {
		return nil, err
	}
	site, err := paramsQuery{Soil: q.Soil, Zone: q.Zone, Region: q.Region}.site()
	if err != nil {
		return nil, err
	}
	if q.Samples > MaxSamples {
		return nil, &spectrum.DomainError{Reason: fmt.Sprintf("at most %d samples per request", MaxSamples)}
	}

	in := spectrum.Input{
		Soil:    site.Soil,
		Zone:    site.Zone,
		Region:  site.Region,
		Factors: spectrum.StructuralFactors{R: q.R, I: q.I, PhiP: q.PhiP, PhiE: q.PhiE},
		Domain:  spectrum.Domain{Start: q.Start, End: q.End, Samples: q.Samples},
	}
	// Validate before touching the cache so errors are not keyed.
	if err := in.Factors.Validate(); err != nil {
		return nil, err
	}
	if err := in.Domain.Validate(); err != nil {
		return nil, err
	}

	var b []byte
	if err := s.cache.Get(r.Context(), encodeKey(in), groupcache.AllocatingByteSliceSink(&b)); err != nil {
		return nil, err
	}
	var res spectrum.Result
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, err
	}
	res.Params = spectrum.NewParams(res.Site, res.Factors)
	return &res, nil
}

func (s *server) spectrumJSON(w http.ResponseWriter, r *http.Request) {
	res, err := s.result(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *server) spectrumETABS(w http.ResponseWriter, r *http.Request) {
	res, err := s.result(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var b bytes.Buffer
	if err := export.WriteETABS(&b, res.Curve); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(b.Bytes())
}

func (s *server) spectrumTable(w http.ResponseWriter, r *http.Request) {
	res, err := s.result(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var b bytes.Buffer
	if err := export.WriteTable(&b, res.Curve, export.MetadataFor(res)); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Write(b.Bytes())
}

// fail maps input errors to 400 and everything else to 500.
func (s *server) fail(w http.ResponseWriter, err error) {
	var qe *queryError
	switch {
	case errors.Is(err, nec.ErrInvalidCategory),
		errors.Is(err, spectrum.ErrInvalidStructuralFactor),
		errors.Is(err, spectrum.ErrDomain),
		errors.As(err, &qe):
		badRequest(w, err)
	default:
		s.log.Error("spectrum request failed", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func badRequest(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", sw.status,
			"duration", time.Since(start))
	})
}

// encodeKey renders an input as a canonical cache key.
func encodeKey(in spectrum.Input) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return strings.Join([]string{
		in.Soil.String(), in.Zone.String(), in.Region.String(),
		f(in.Factors.R), f(in.Factors.I), f(in.Factors.PhiP), f(in.Factors.PhiE),
		f(in.Domain.Start), f(in.Domain.End), strconv.Itoa(in.Domain.Samples),
	}, "|")
}

func decodeKey(key string) (spectrum.Input, error) {
	parts := strings.Split(key, "|")
	if len(parts) != 10 {
		return spectrum.Input{}, fmt.Errorf("malformed cache key %q", key)
	}

	var in spectrum.Input
	var err error
	if in.Soil, err = nec.ParseSoilType(parts[0]); err != nil {
		return in, err
	}
	if in.Zone, err = nec.ParseZone(parts[1]); err != nil {
		return in, err
	}
	if in.Region, err = nec.ParseRegion(parts[2]); err != nil {
		return in, err
	}

	nums := make([]float64, 6)
	for i := range nums {
		if nums[i], err = strconv.ParseFloat(parts[3+i], 64); err != nil {
			return in, fmt.Errorf("malformed cache key %q: %w", key, err)
		}
	}
	samples, err := strconv.Atoi(parts[9])
	if err != nil {
		return in, fmt.Errorf("malformed cache key %q: %w", key, err)
	}

	in.Factors = spectrum.StructuralFactors{R: nums[0], I: nums[1], PhiP: nums[2], PhiE: nums[3]}
	in.Domain = spectrum.Domain{Start: nums[4], End: nums[5], Samples: samples}
	return in, nil
}
