package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assessment-service/internal/bank"
	"assessment-service/internal/models"
)

type BankHandler struct {
	Bank *bank.QuestionBank
}

func NewBankHandler(questionBank *bank.QuestionBank) *BankHandler {
	return &BankHandler{Bank: questionBank}
}

// Counts exposes the bank's question totals by domain and difficulty.
func (h *BankHandler) Counts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"counts":  h.Bank.Counts(),
		"domains": h.Bank.Domains(),
	})
}

// ResetUsed clears used-question tracking: everything, one domain, or one
// domain/difficulty category depending on the query parameters given.
func (h *BankHandler) ResetUsed(c *gin.Context) {
	domain := c.Query("domain")
	difficulty := models.Difficulty(c.Query("difficulty"))

	if difficulty != "" && !difficulty.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown difficulty: " + string(difficulty)})
		return
	}
	if domain == "" && difficulty != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "difficulty requires a domain"})
		return
	}

	h.Bank.ResetUsed(domain, difficulty)
	c.JSON(http.StatusOK, gin.H{"message": "used questions reset"})
}
