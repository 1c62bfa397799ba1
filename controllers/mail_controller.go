package controllers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wavelinkisp/opsboard/dto"
	"github.com/wavelinkisp/opsboard/mailer"
	"github.com/wavelinkisp/opsboard/utils"
)

// POST /api/contact
func SubmitContactForm(m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ContactDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		err := m.SendContactMessage(mailer.ContactMessage{
			Name:    strings.TrimSpace(body.Name),
			Email:   strings.TrimSpace(body.Email),
			Phone:   strings.TrimSpace(body.Phone),
			Subject: strings.TrimSpace(body.Subject),
			Message: body.Message,
		})
		if err != nil {
			log.Printf("contact mail failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to send message"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "message sent"})
	}
}

// POST /api/careers/apply — multipart form with an optional resume file. The
// resume is stored in R2 and also attached to the notification mail.
func SubmitJobApplication(m *mailer.Mailer) gin.HandlerFunc {
	validator := utils.NewResumeValidator()

	return func(c *gin.Context) {
		fullName := strings.TrimSpace(c.PostForm("fullName"))
		email := strings.TrimSpace(c.PostForm("email"))
		position := strings.TrimSpace(c.PostForm("position"))
		if fullName == "" || email == "" || position == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "fullName, email and position are required"})
			return
		}

		app := mailer.JobApplication{
			FullName: fullName,
			Email:    email,
			Phone:    strings.TrimSpace(c.PostForm("phone")),
			Position: position,
			Message:  c.PostForm("message"),
		}

		var attachment *mailer.Attachment
		fileHeader, err := c.FormFile("resume")
		if err == nil && fileHeader != nil {
			if _, err := validator.ValidateFile(fileHeader); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}

			r2, err := utils.NewCloudClient(c.Request.Context())
			if err != nil {
				log.Printf("r2 client unavailable: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "resume storage unavailable"})
				return
			}
			stored, err := r2.UploadResume(c.Request.Context(), fileHeader)
			if err != nil {
				log.Printf("resume upload failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to store resume"})
				return
			}
			app.ResumeURL = stored.PublicURL

			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to read resume"})
				return
			}
			content, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to read resume"})
				return
			}
			attachment = &mailer.Attachment{
				FileName: stored.FileName,
				MimeType: stored.MimeType,
				Content:  content,
			}
		}

		if err := m.SendJobApplication(app, attachment); err != nil {
			log.Printf("careers mail failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to send application"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "application received"})
	}
}

// POST /api/coverage-requests
func SubmitCoverageRequest(m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CoverageRequestDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		err := m.SendCoverageRequest(mailer.CoverageRequest{
			Name:     strings.TrimSpace(body.Name),
			Email:    strings.TrimSpace(body.Email),
			Phone:    strings.TrimSpace(body.Phone),
			Location: strings.TrimSpace(body.Location),
			Details:  body.Details,
		})
		if err != nil {
			log.Printf("coverage request mail failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to send request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "request received"})
	}
}

// POST /api/business-quotes
func SubmitBusinessQuote(m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.BusinessQuoteDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		err := m.SendBusinessQuote(mailer.BusinessQuote{
			Company:      strings.TrimSpace(body.Company),
			ContactName:  strings.TrimSpace(body.ContactName),
			Email:        strings.TrimSpace(body.Email),
			Phone:        strings.TrimSpace(body.Phone),
			Requirements: body.Requirements,
		})
		if err != nil {
			log.Printf("business quote mail failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to send quote request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "quote request received"})
	}
}

// POST /api/schedule-call
func SubmitCallSchedule(m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ScheduleCallDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		err := m.SendCallSchedule(mailer.CallSchedule{
			Name:          strings.TrimSpace(body.Name),
			Email:         strings.TrimSpace(body.Email),
			Phone:         strings.TrimSpace(body.Phone),
			PreferredTime: body.PreferredTime,
			Topic:         strings.TrimSpace(body.Topic),
		})
		if err != nil {
			log.Printf("schedule call mail failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to send request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "request received"})
	}
}
