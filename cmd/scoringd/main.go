package main

import (
	"log"
	"net/http"
	"os"

	"fraudlens/adapters/heuristic"
	"fraudlens/domain/transaction"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// scoringd is a local stand-in for the real fraud-scoring service. It serves
// the same wire contract (/predict, /predict/batch, /health) on top of the
// heuristic rule engine, so the console and CLI can be developed and demoed
// without the model deployment.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	engine := heuristic.NewScorer()

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		h := engine.Health(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"status":        h.Status,
			"model_loaded":  h.ModelLoaded,
			"model_version": h.ModelVersion,
			"threshold":     h.Threshold,
		})
	})

	router.POST("/predict", func(c *gin.Context) {
		var rec transaction.Record
		if err := c.ShouldBindJSON(&rec); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid transaction payload: " + err.Error()})
			return
		}
		if err := rec.Validate(); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
			return
		}

		pred, err := engine.Score(c.Request.Context(), rec)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, pred)
	})

	router.POST("/predict/batch", func(c *gin.Context) {
		var req struct {
			Transactions []transaction.Record `json:"transactions"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid batch payload: " + err.Error()})
			return
		}
		if len(req.Transactions) == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "transactions must not be empty"})
			return
		}

		result, err := engine.ScoreBatch(c.Request.Context(), req.Transactions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_transactions": result.Summary.TotalTransactions,
			"fraud_count":        result.Summary.FraudCount,
			"legit_count":        result.Summary.LegitCount,
			"fraud_percentage":   result.Summary.FraudPercentage,
			"results":            result.Results,
		})
	})

	port := os.Getenv("SCORINGD_PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Starting stand-in scoring service on :%s (model %s)", port, heuristic.ModelVersion)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed:", err)
	}
}
