package main

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Simplici0/wdquote/internal/catalog"
	"github.com/Simplici0/wdquote/internal/pricing"
	"github.com/Simplici0/wdquote/internal/takeoff"
)

type quoteRequest struct {
	ClientName     string             `json:"client_name"`
	ProjectAddress string             `json:"project_address"`
	Items          []pricing.ItemSpec `json:"items"`
}

type takeoffRequest struct {
	Filename string `json:"filename"`
}

type productsResponse struct {
	Windows       []catalog.Product      `json:"windows"`
	Doors         []catalog.Product      `json:"doors"`
	GlassOptions  []catalog.GlassOption  `json:"glass_options"`
	FinishOptions []catalog.FinishOption `json:"finish_options"`
	AddonOptions  []catalog.AddonOption  `json:"addon_options"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type homeViewData struct {
	Windows       []catalog.Product
	Doors         []catalog.Product
	GlassOptions  []catalog.GlassOption
	FinishOptions []catalog.FinishOption
	AddonOptions  []catalog.AddonOption
}

type quoteBuilderViewData struct {
	Catalog productsResponse
}

func (s *server) productListing() productsResponse {
	return productsResponse{
		Windows:       s.catalog.Windows(),
		Doors:         s.catalog.Doors(),
		GlassOptions:  s.catalog.GlassOptions(),
		FinishOptions: s.catalog.FinishOptions(),
		AddonOptions:  s.catalog.AddonOptions(),
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleAPIQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	quote, err := s.engine.GenerateQuote(req.ClientName, req.ProjectAddress, req.Items)
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.log.Error("generate quote", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to generate quote"})
		return
	}

	s.log.Info("quote generated",
		zap.String("quote_number", quote.QuoteNumber),
		zap.Int("line_items", len(quote.LineItems)),
		zap.Float64("total", quote.Total),
	)
	writeJSON(w, http.StatusOK, quote)
}

func (s *server) handleAPITakeoff(w http.ResponseWriter, r *http.Request) {
	var req takeoffRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	writeJSON(w, http.StatusOK, takeoff.Simulate(req.Filename))
}

func (s *server) handleAPIProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.productListing())
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "index.html", homeViewData{
		Windows:       s.catalog.Windows(),
		Doors:         s.catalog.Doors(),
		GlassOptions:  s.catalog.GlassOptions(),
		FinishOptions: s.catalog.FinishOptions(),
		AddonOptions:  s.catalog.AddonOptions(),
	})
}

func (s *server) handleQuoteBuilder(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "quote.html", quoteBuilderViewData{Catalog: s.productListing()})
}

func (s *server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "upload.html", quoteBuilderViewData{Catalog: s.productListing()})
}

func (s *server) handleResultPage(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "result.html", nil)
}

func isValidationError(err error) bool {
	return errors.Is(err, pricing.ErrUnknownProduct) ||
		errors.Is(err, pricing.ErrInvalidSizeIndex) ||
		errors.Is(err, pricing.ErrInvalidQuantity)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var templateFuncs = template.FuncMap{
	"money": func(v float64) string {
		return humanize.FormatFloat("#,###.##", v)
	},
	"multiplier": func(v float64) string {
		return humanize.FtoaWithDigits(v, 2)
	},
	"json": func(v any) (template.JS, error) {
		raw, err := json.Marshal(v)
		return template.JS(raw), err
	},
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFiles(
		filepath.Join(s.templatesDir, "layout.html"),
		filepath.Join(s.templatesDir, page),
	)
	if err != nil {
		s.log.Error("parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.log.Error("render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}
