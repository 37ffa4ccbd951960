package api

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3proventos/internal/calculator"
	"github.com/guttosm/b3proventos/internal/domain/dto"
	"github.com/guttosm/b3proventos/internal/scraper"
	"github.com/guttosm/b3proventos/internal/service"
)

// tickerPattern accepts B3 symbols such as PETR4, ITUB4, TAEE11 or BOVA11.
var tickerPattern = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)

// Handler provides the HTTP handlers of the dividends API.
//
// Responsibilities:
//   - Validate and normalize the ticker and window path parameters
//   - Delegate to the DividendService with the request context
//   - Translate domain results into response DTOs
//   - Map scraping and aggregation errors to HTTP status codes
type Handler struct {
	svc service.DividendService
}

// NewHandler constructs a Handler backed by svc.
func NewHandler(svc service.DividendService) *Handler {
	return &Handler{svc: svc}
}

// GetDetails handles GET /api/details/{ticker}.
//
// GetDetails godoc
// @Summary      Company details
// @Description  Every label/value pair of the provider details page, labels normalized to UPPER_SNAKE_CASE
// @Tags         details
// @Produce      json
// @Param        ticker  path      string  true  "Stock ticker" example(PETR4)
// @Success      200     {object}  map[string]string  "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse  "Not Found"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/details/{ticker} [get]
func (h *Handler) GetDetails(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}
	details, err := h.svc.CompanyDetails(c.Request.Context(), ticker)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetYearlyDividends handles GET /api/yearly_dividends/{ticker}.
//
// GetYearlyDividends godoc
// @Summary      Yearly dividends
// @Description  Raw yearly dividend series scraped from the provider
// @Tags         dividends
// @Produce      json
// @Param        ticker  path      string  true  "Stock ticker" example(PETR4)
// @Success      200     {object}  dto.YearlyDividendsResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse            "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse            "Not Found"
// @Failure      500     {object}  dto.ErrorResponse            "Internal Error"
// @Router       /api/yearly_dividends/{ticker} [get]
func (h *Handler) GetYearlyDividends(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}
	records, err := h.svc.YearlyDividends(c.Request.Context(), ticker)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewYearlyDividendsResponse(ticker, records))
}

// GetMonthlyDividends handles GET /api/monthly_dividends/{ticker}.
//
// GetMonthlyDividends godoc
// @Summary      Monthly dividends
// @Description  Raw detailed dividend series; dates are YYYY-MM-DD or null
// @Tags         dividends
// @Produce      json
// @Param        ticker  path      string  true  "Stock ticker" example(ITUB4)
// @Success      200     {object}  dto.MonthlyDividendsResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse             "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse             "Not Found"
// @Failure      500     {object}  dto.ErrorResponse             "Internal Error"
// @Router       /api/monthly_dividends/{ticker} [get]
func (h *Handler) GetMonthlyDividends(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}
	records, err := h.svc.MonthlyDividends(c.Request.Context(), ticker)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMonthlyDividendsResponse(ticker, records))
}

// GetAccumulatedYearly handles GET /api/accumulated_yearly_dividends/{ticker}/{years}.
//
// GetAccumulatedYearly godoc
// @Summary      Accumulated yearly dividends
// @Description  Sum of yearly dividends from (current year - years) to the current year, rounded to 2 places
// @Tags         accumulated
// @Produce      json
// @Param        ticker  path      string  true  "Stock ticker" example(PETR4)
// @Param        years   path      int     true  "Trailing years" example(5)
// @Success      200     {object}  dto.AccumulatedYearlyResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse              "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse              "Not Found"
// @Failure      500     {object}  dto.ErrorResponse              "Internal Error"
// @Router       /api/accumulated_yearly_dividends/{ticker}/{years} [get]
func (h *Handler) GetAccumulatedYearly(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}
	years, ok := windowParam(c, "years")
	if !ok {
		return
	}
	acc, err := h.svc.AccumulatedYearly(c.Request.Context(), ticker, years)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccumulatedYearlyResponse{
		Ticker:               acc.Ticker,
		Years:                acc.Length,
		AccumulatedDividends: acc.Total.InexactFloat64(),
	})
}

// GetAccumulatedMonthly handles GET /api/accumulated_monthly_dividends/{ticker}/{months}.
//
// GetAccumulatedMonthly godoc
// @Summary      Accumulated monthly dividends
// @Description  Sum of dividends whose ex-date lies within the last `months` months, rounded to 2 places
// @Tags         accumulated
// @Produce      json
// @Param        ticker  path      string  true  "Stock ticker" example(ITUB4)
// @Param        months  path      int     true  "Trailing months" example(60)
// @Success      200     {object}  dto.AccumulatedMonthlyResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse               "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse               "Not Found"
// @Failure      500     {object}  dto.ErrorResponse               "Internal Error"
// @Router       /api/accumulated_monthly_dividends/{ticker}/{months} [get]
func (h *Handler) GetAccumulatedMonthly(c *gin.Context) {
	ticker, ok := tickerParam(c)
	if !ok {
		return
	}
	months, ok := windowParam(c, "months")
	if !ok {
		return
	}
	acc, err := h.svc.AccumulatedMonthly(c.Request.Context(), ticker, months)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccumulatedMonthlyResponse{
		Ticker:               acc.Ticker,
		Months:               acc.Length,
		AccumulatedDividends: acc.Total.InexactFloat64(),
	})
}

// tickerParam reads the normalized ticker, answering 400 when it is not a plausible symbol.
func tickerParam(c *gin.Context) (string, bool) {
	ticker := scraper.NormalizeTicker(c.Param("ticker"))
	if !tickerPattern.MatchString(ticker) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("invalid ticker, expected 4 to 12 letters or digits", nil))
		return "", false
	}
	return ticker, true
}

// windowParam reads a non-negative integer path parameter, answering 400 otherwise.
func windowParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err == nil {
		err = calculator.CheckWindow(name, n)
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse("invalid "+name+", expected a non-negative integer", err))
		return 0, false
	}
	return n, true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, scraper.ErrTickerUnreachable),
		errors.Is(err, scraper.ErrNoTablesFound),
		errors.Is(err, scraper.ErrTableNotFound),
		errors.Is(err, scraper.ErrNoDataExtracted):
		return http.StatusNotFound
	case errors.Is(err, scraper.ErrHeaderNotFound),
		errors.Is(err, scraper.ErrColumnNotFound),
		errors.Is(err, calculator.ErrInvalidWindow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for err. Known domain errors expose
// their description as the message; anything else is a generic 500.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := statusFor(err)
	if status == http.StatusInternalServerError && !errors.Is(err, calculator.ErrMalformedRecord) {
		c.AbortWithStatusJSON(status, dto.NewErrorResponse("internal server error", err))
		return
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(err.Error(), nil))
}
