package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	MIMETextCSV = "text/csv; charset=utf-8"

	// HeaderSkippedRows reports how many input rows a lenient pass dropped.
	HeaderSkippedRows = "X-Skipped-Rows"
)

// DataResponse writes the API envelope with statusCode as both HTTP and body status.
func DataResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, APIResponse{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
		Data:    data,
	})
}

func SuccessResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusOK, data)
}

func BadRequestResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusBadRequest, data)
}

func InternalServerErrorResponse(c echo.Context) error {
	return DataResponse(c, http.StatusInternalServerError, "Something went wrong")
}

// AppErrorResponse writes an AppError with its own status; anything else is a 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return DataResponse(c, appErr.Status, []*AppError{appErr})
	}
	return InternalServerErrorResponse(c)
}

// CSVResponse writes body as a CSV attachment along with the skipped row count.
func CSVResponse(c echo.Context, body []byte, skipped int) error {
	c.Response().Header().Set(HeaderSkippedRows, strconv.Itoa(skipped))
	return c.Blob(http.StatusOK, MIMETextCSV, body)
}
