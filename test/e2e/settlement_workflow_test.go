//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yfarouk/dealstack-be/internal/adapters/db"
	redis_a "github.com/yfarouk/dealstack-be/internal/adapters/redis_adapter"
	"github.com/yfarouk/dealstack-be/internal/core/services"
	"github.com/yfarouk/dealstack-be/internal/handlers"
	"github.com/yfarouk/dealstack-be/internal/handlers/middleware"
	"github.com/yfarouk/dealstack-be/test/helpers"
)

const e2eJWTSecret = "e2e-secret-e2e-secret-e2e-secret"

type SettlementE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	token     string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *SettlementE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	token, err := middleware.IssueDealerToken(helpers.TestDealerID, e2eJWTSecret, time.Hour)
	s.Require().NoError(err)
	s.token = token

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *SettlementE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *SettlementE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *SettlementE2ESuite) TestCompleteDealWorkflow() {
	// 1. Add a device to stock
	createReq := map[string]interface{}{
		"brand":      "Samsung",
		"model":      "Galaxy S23",
		"condition":  "good",
		"storage_gb": 256,
		"base_price": "450.00",
		"quantity":   5,
	}

	resp := s.makeRequest("POST", "/devices", createReq)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var device map[string]interface{}
	s.decodeResponse(resp, &device)
	deviceID := device["id"].(string)
	s.NotEmpty(deviceID)

	// 2. Settle a credit deal against that stock
	dealReq := map[string]interface{}{
		"customer_name": "Ahmed Mostafa",
		"contact":       "+201001234567",
		"deal_type":     "retail",
		"payment_mode":  "credit",
		"credit_term":   14,
		"phones": []map[string]interface{}{
			{
				"model":     "Galaxy S23",
				"price":     "480.00",
				"quantity":  2,
				"phone_id":  deviceID,
				"condition": "good",
			},
		},
	}

	resp = s.makeRequest("POST", "/deals", dealReq)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var settled map[string]string
	s.decodeResponse(resp, &settled)
	dealID := settled["deal_id"]
	s.NotEmpty(dealID)

	// 3. Stock was decremented atomically with the deal
	resp = s.makeRequest("GET", fmt.Sprintf("/devices/%s", deviceID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &device)
	s.Equal(float64(3), device["quantity"])

	// 4. Credit deal starts pending
	var deal map[string]interface{}
	resp = s.makeRequest("GET", fmt.Sprintf("/deals/%s", dealID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.decodeResponse(resp, &deal)
	s.Equal("Pending", deal["status"])
	s.Equal("480.00", deal["total_amount"])

	// 5. Per-phone conditions are recoverable
	resp = s.makeRequest("GET", fmt.Sprintf("/deals/%s/conditions", dealID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var conditions map[string]string
	s.decodeResponse(resp, &conditions)
	s.Equal("good", conditions["Galaxy S23"])

	// 6. Settle the outstanding credit
	resp = s.makeRequest("PATCH", fmt.Sprintf("/deals/%s/paid", dealID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.makeRequest("GET", fmt.Sprintf("/deals/%s", dealID), nil)
	s.decodeResponse(resp, &deal)
	s.Equal("Paid", deal["status"])

	// 7. Market insights now see the sold units
	resp = s.makeRequest("GET", "/insights/market?brand=Samsung&model=Galaxy+S23", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	// One sold unit per phone line
	var insights map[string]interface{}
	s.decodeResponse(resp, &insights)
	s.Equal(true, insights["exact_match"])
	s.Equal(float64(1), insights["count"])

	// 8. Delete the deal
	resp = s.makeRequest("DELETE", fmt.Sprintf("/deals/%s", dealID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.makeRequest("GET", fmt.Sprintf("/deals/%s", dealID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *SettlementE2ESuite) TestInsufficientStockRollsBack() {
	createReq := map[string]interface{}{
		"brand":      "Xiaomi",
		"model":      "Redmi Note 12",
		"base_price": "200.00",
		"quantity":   1,
	}

	resp := s.makeRequest("POST", "/devices", createReq)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var device map[string]interface{}
	s.decodeResponse(resp, &device)
	deviceID := device["id"].(string)

	dealReq := map[string]interface{}{
		"customer_name": "Sara Adel",
		"contact":       "+201009876543",
		"deal_type":     "wholesale",
		"payment_mode":  "cash",
		"phones": []map[string]interface{}{
			{
				"model":    "Redmi Note 12",
				"price":    "190.00",
				"quantity": 3,
				"phone_id": deviceID,
			},
		},
	}

	resp = s.makeRequest("POST", "/deals", dealReq)
	s.Equal(http.StatusConflict, resp.StatusCode)

	// Nothing was committed: stock untouched, no deals recorded
	resp = s.makeRequest("GET", fmt.Sprintf("/devices/%s", deviceID), nil)
	s.decodeResponse(resp, &device)
	s.Equal(float64(1), device["quantity"])

	resp = s.makeRequest("GET", "/deals", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var list map[string]interface{}
	s.decodeResponse(resp, &list)
	s.Equal(float64(0), list["total_count"])
}

func (s *SettlementE2ESuite) TestConcurrentSettlements() {
	createReq := map[string]interface{}{
		"brand":      "Google",
		"model":      "Pixel 8",
		"base_price": "500.00",
		"quantity":   5,
	}

	resp := s.makeRequest("POST", "/devices", createReq)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var device map[string]interface{}
	s.decodeResponse(resp, &device)
	deviceID := device["id"].(string)

	var (
		mu        sync.Mutex
		succeeded int
		conflicts int
		wg        sync.WaitGroup
	)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			dealReq := map[string]interface{}{
				"customer_name": fmt.Sprintf("Buyer %d", idx),
				"contact":       fmt.Sprintf("+2010000000%02d", idx),
				"deal_type":     "retail",
				"payment_mode":  "cash",
				"phones": []map[string]interface{}{
					{
						"model":    "Pixel 8",
						"price":    "520.00",
						"quantity": 1,
						"phone_id": deviceID,
					},
				},
			}

			resp := s.makeRequest("POST", "/deals", dealReq)
			mu.Lock()
			defer mu.Unlock()
			switch resp.StatusCode {
			case http.StatusCreated:
				succeeded++
			case http.StatusConflict:
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	// Exactly the available units sell; the rest hit the stock floor
	s.Equal(5, succeeded)
	s.Equal(5, conflicts)

	resp = s.makeRequest("GET", fmt.Sprintf("/devices/%s", deviceID), nil)
	s.decodeResponse(resp, &device)
	s.Equal(float64(0), device["quantity"])
	s.Equal("sold", device["status"])
}

func (s *SettlementE2ESuite) TestAuthIsRequired() {
	req, err := http.NewRequest("GET", s.baseURL+"/devices", nil)
	s.Require().NoError(err)

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

// Helper methods

func (s *SettlementE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()

	deviceRepo := db.NewDeviceRepository(s.testDB.Database, logger)
	dealRepo := db.NewDealRepository(s.testDB.Database, logger)
	cache := redis_a.NewCache(s.testRedis.Client, 5*time.Minute, logger)

	deviceService := services.NewDeviceService(deviceRepo, nil, logger)
	settlementService := services.NewSettlementService(dealRepo, deviceRepo, s.testDB.Database, cache, logger)
	insightService := services.NewInsightService(dealRepo, s.testDB.Database, cache, logger)

	deviceHandler := handlers.NewDeviceHandler(deviceService, logger)
	dealHandler := handlers.NewDealHandler(settlementService, nil, logger)
	insightHandler := handlers.NewInsightHandler(insightService, logger)

	api := http.NewServeMux()
	api.HandleFunc("POST /api/v1/devices", deviceHandler.CreateDevice)
	api.HandleFunc("GET /api/v1/devices", deviceHandler.ListDevices)
	api.HandleFunc("GET /api/v1/devices/{id}", deviceHandler.GetDevice)
	api.HandleFunc("POST /api/v1/deals", dealHandler.SettleDeal)
	api.HandleFunc("GET /api/v1/deals", dealHandler.ListDeals)
	api.HandleFunc("GET /api/v1/deals/{id}", dealHandler.GetDeal)
	api.HandleFunc("GET /api/v1/deals/{id}/conditions", dealHandler.GetPhoneConditions)
	api.HandleFunc("PATCH /api/v1/deals/{id}/paid", dealHandler.MarkDealPaid)
	api.HandleFunc("DELETE /api/v1/deals/{id}", dealHandler.DeleteDeal)
	api.HandleFunc("GET /api/v1/insights/market", insightHandler.GetMarketInsights)
	api.HandleFunc("GET /api/v1/reports/inventory", insightHandler.GetInventorySummary)

	auth := middleware.Authenticate(e2eJWTSecret)
	mux := http.NewServeMux()
	mux.Handle("/api/v1/", auth(api))

	return httptest.NewServer(mux)
}

func (s *SettlementE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+s.token)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)

	return resp
}

func (s *SettlementE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.Require().NoError(err)
}

func TestSettlementE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(SettlementE2ESuite))
}
