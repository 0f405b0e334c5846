package resp

import (
	"errors"
	"log"
	"net/http"

	"food-catalog-api/apperr"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// Error writes err with the status its kind maps to. Internal causes are logged, never sent.
func Error(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.Internal(err)
	}
	if e.Kind == apperr.KindInternal {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, e.Err)
	}

	body := gin.H{"message": e.Message}
	if len(e.Fields) > 0 {
		body["errors"] = e.Fields
	}
	c.JSON(apperr.Status(e.Kind), body)
}

// Abort writes err like Error and stops the handler chain
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
