package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServeStaticFiles configures routes for the two dashboard pages
func (s *Server) ServeStaticFiles() {
	s.router.GET("/", func(c *gin.Context) {
		c.File("public/index.html")
	})

	s.router.GET("/chat", func(c *gin.Context) {
		c.File("public/chat.html")
	})

	s.router.StaticFS("/static", http.Dir("public"))
}
