// Package web serves the browser upload form and forwards videos to the analysis API.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-video-analyzer/backend/internal/client"
	"github.com/pageza/recipe-video-analyzer/backend/internal/middleware"
	"github.com/pageza/recipe-video-analyzer/backend/internal/recipe"
)

//go:embed templates/*.html
var templates embed.FS

// PageData is the template input
type PageData struct {
	View   client.Result
	APIURL string
}

// Handler renders the form and submits uploads through an Uploader
type Handler struct {
	uploader client.Uploader
	apiURL   string
}

// NewHandler creates a new Handler instance
func NewHandler(uploader client.Uploader, apiURL string) *Handler {
	return &Handler{uploader: uploader, apiURL: apiURL}
}

// ParseTemplates loads the embedded page templates
func ParseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"ingredientLine": recipe.IngredientLine,
		"prettyJSON":     recipe.PrettyJSON,
	}).ParseFS(templates, "templates/*.html")
}

// NewRouter builds the UI server
func NewRouter(h *Handler) (*gin.Engine, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Logger(), middleware.Recovery())
	router.SetHTMLTemplate(tmpl)
	router.GET("/", h.Index)
	router.POST("/", h.Submit)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router, nil
}

// Index renders the empty form
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", PageData{APIURL: h.apiURL})
}

// Submit forwards the uploaded file to the API and renders the outcome
func (h *Handler) Submit(c *gin.Context) {
	session := client.NewSession(h.uploader)

	fh, err := c.FormFile("file")
	if err != nil {
		c.HTML(http.StatusBadRequest, "index.html", PageData{
			View:   client.Result{Error: client.ErrNoFile.Error()},
			APIURL: h.apiURL,
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "index.html", PageData{
			View:   client.Result{Error: err.Error()},
			APIURL: h.apiURL,
		})
		return
	}
	defer f.Close()

	session.Select(fh.Filename)
	if err := session.Submit(c.Request.Context(), fh.Filename, f); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", PageData{
			View:   client.Result{Error: err.Error()},
			APIURL: h.apiURL,
		})
		return
	}

	c.HTML(http.StatusOK, "index.html", PageData{View: session.View(), APIURL: h.apiURL})
}
