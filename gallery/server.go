// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stareslike/stareslike/clustering"
	"github.com/stareslike/stareslike/spatial"
)

// ServerOptions configures the HTTP API.
type ServerOptions struct {
	H3Resolution int
	TopLocations int
}

// Server exposes the photo map over HTTP.
type Server struct {
	repo           PhotoRepository
	municipalities *MunicipalityIndex
	view           *MapView
	opts           ServerOptions
}

// NewServer creates a server. municipalities may be nil.
func NewServer(repo PhotoRepository, municipalities *MunicipalityIndex, view *MapView, opts ServerOptions) *Server {
	return &Server{
		repo:           repo,
		municipalities: municipalities,
		view:           view,
		opts:           opts,
	}
}

// Router returns a gin engine with every API route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/api/clusters", s.getClusters)
	r.GET("/api/summary", s.getSummary)
	r.GET("/api/radius", s.getRadius)
	r.GET("/api/photos/:id", s.getPhoto)

	return r
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	log.Printf("serving photo map on http://%s", addr)

	return s.Router().Run(addr)
}

// zoomParam reads ?zoom=, defaulting to the model's minimum zoom.
// Out-of-range values are clamped later by the view.
func (s *Server) zoomParam(ctx *gin.Context) (int, error) {
	raw := ctx.Query("zoom")
	if raw == "" {
		return s.view.Model().MinZoom, nil
	}

	zoom, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid zoom parameter")
	}

	return zoom, nil
}

func queryParam(ctx *gin.Context) (Query, error) {
	q := Query{
		Author: ctx.Query("author"),
		Text:   ctx.Query("q"),
	}

	if raw := ctx.Query("decade"); raw != "" {
		decade, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("invalid decade parameter")
		}

		q.Decade = decade
	}

	return q, q.Validate()
}

// loadPhotos returns the stored records matching q and the mappable photos among them.
func (s *Server) loadPhotos(q Query) ([]clustering.PhotoRecord, []clustering.GeoPhoto, error) {
	records, err := s.repo.ListPhotos()
	if err != nil {
		return nil, nil, err
	}

	records = q.Apply(s.municipalities.Resolve(records))

	return records, clustering.Filter(records), nil
}

func (s *Server) getClusters(ctx *gin.Context) {
	zoom, err := s.zoomParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	q, err := queryParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	_, photos, err := s.loadPhotos(q)
	if err != nil {
		log.Printf("Error loading photos: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, s.view.Markers(photos, zoom))
}

type summaryResponse struct {
	*Summary

	Cache CacheStats `json:"cache"`
}

func (s *Server) getSummary(ctx *gin.Context) {
	zoom, err := s.zoomParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	q, err := queryParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	records, photos, err := s.loadPhotos(q)
	if err != nil {
		log.Printf("Error loading photos: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	summary, err := Summarize(records, photos, s.view.Markers(photos, zoom), SummaryOptions{
		TopLocations: s.opts.TopLocations,
		H3Resolution: s.opts.H3Resolution,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, summaryResponse{Summary: summary, Cache: s.view.CacheStats()})
}

// ZoomRadius is one row of the radius table.
type ZoomRadius struct {
	Zoom   int     `json:"zoom"`
	Radius float64 `json:"radius"`
	Meters float64 `json:"meters"`
}

// RadiusTable lists the radius for every zoom of the model.
func RadiusTable(m clustering.ZoomModel) []ZoomRadius {
	table := make([]ZoomRadius, 0, m.MaxZoom-m.MinZoom+1)

	for z := m.MinZoom; z <= m.MaxZoom; z++ {
		r := m.RadiusFor(z)
		table = append(table, ZoomRadius{Zoom: z, Radius: r, Meters: spatial.DegreesToMeters(r)})
	}

	return table
}

func (s *Server) getRadius(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"model":  s.view.Model(),
		"levels": RadiusTable(s.view.Model()),
	})
}

func (s *Server) getPhoto(ctx *gin.Context) {
	photo, err := s.repo.GetPhoto(ctx.Param("id"))
	if errors.Is(err, ErrPhotoNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

		return
	}

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, photo)
}
