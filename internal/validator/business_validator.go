package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nithishcb360/recruit-sub001/internal/models"
)

// BusinessValidator handles business rule validation for the recruiting
// domain: template lifecycles, question sets and the response ledger
// preconditions.
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateTemplateCreate validates template creation business rules.
func (bv *BusinessValidator) ValidateTemplateCreate(req *models.TemplateCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, bv.validateQuestionSet(req.Questions)...)

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "must not be blank",
			Value:   req.Name,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateTemplateUpdate validates template update business rules. Updating
// requires a persisted id; nothing with id zero may reach a store.
func (bv *BusinessValidator) ValidateTemplateUpdate(req *models.TemplateUpdateRequest, existing *models.FeedbackTemplate) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, bv.validateQuestionSet(req.Questions)...)

	if existing != nil && existing.ID.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "id",
			Message: "template has no persisted identifier",
			Value:   existing.ID,
			Rule:    "business_logic",
		})
	}

	if req.Status != nil && existing != nil {
		errors = append(errors, bv.ValidateTemplateStatusTransition(existing.Status, models.TemplateStatus(*req.Status))...)
	}

	return errors
}

// validateQuestionSet checks every question type against the supported set.
// Legacy type names from retired builders are called out explicitly so the
// caller sees what was rejected rather than a generic failure.
func (bv *BusinessValidator) validateQuestionSet(questions []models.Question) ValidationErrors {
	var errors ValidationErrors

	seen := make(map[int64]bool, len(questions))
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("questions[%d].text", i),
				Message: "must not be blank",
				Rule:    "business_logic",
			})
		}
		if !models.SupportedQuestionTypes[q.Type] {
			msg := "must be text, textarea, audio or video"
			if models.LegacyQuestionTypes[q.Type] {
				msg = fmt.Sprintf("type %q is no longer supported", q.Type)
			}
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("questions[%d].type", i),
				Message: msg,
				Value:   q.Type,
				Rule:    "question_type",
			})
		}
		if q.ID != 0 && seen[q.ID] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("questions[%d].id", i),
				Message: "duplicate question id within template",
				Value:   q.ID,
				Rule:    "business_logic",
			})
		}
		seen[q.ID] = true
	}

	return errors
}

// ValidateTemplateStatusTransition validates template lifecycle moves.
func (bv *BusinessValidator) ValidateTemplateStatusTransition(current, next models.TemplateStatus) ValidationErrors {
	var errors ValidationErrors

	allowedTransitions := map[models.TemplateStatus][]models.TemplateStatus{
		models.TemplateDraft:     {models.TemplatePublished, models.TemplateArchived},
		models.TemplatePublished: {models.TemplateDraft, models.TemplateArchived},
		models.TemplateArchived:  {}, // No transitions from archived
	}

	if current == next {
		return nil
	}

	allowed := false
	for _, s := range allowedTransitions[current] {
		if next == s {
			allowed = true
			break
		}
	}

	if !allowed {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("cannot transition from %s to %s", current, next),
			Value:   next,
			Rule:    "status_transition",
		})
	}

	return errors
}

// ValidatePublish validates that a template may be published: it needs a
// backend-assigned id and at least one question.
func (bv *BusinessValidator) ValidatePublish(template *models.FeedbackTemplate) ValidationErrors {
	var errors ValidationErrors

	if template.ID.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "id",
			Message: "template has no persisted identifier",
			Value:   template.ID,
			Rule:    "business_logic",
		})
	}

	if template.ID.IsLocal() {
		errors = append(errors, ValidationError{
			Field:   "id",
			Message: "locally saved templates cannot be published; sync to server first",
			Value:   template.ID,
			Rule:    "business_logic",
		})
	}

	if len(template.Questions) == 0 {
		errors = append(errors, ValidationError{
			Field:   "questions",
			Message: "template must have at least one question before publishing",
			Value:   0,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateResponseSave validates the ledger precondition: the question must
// exist within the template and carry a supported type.
func (bv *BusinessValidator) ValidateResponseSave(req *models.ResponseSaveRequest, template *models.FeedbackTemplate) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if template == nil {
		errors = append(errors, ValidationError{
			Field:   "form_id",
			Message: "template not found",
			Value:   req.FormID,
			Rule:    "business_logic",
		})
		return errors
	}

	q := template.FindQuestion(req.QuestionID)
	if q == nil {
		errors = append(errors, ValidationError{
			Field:   "question_id",
			Message: "question does not exist in template",
			Value:   req.QuestionID,
			Rule:    "business_logic",
		})
		return errors
	}

	if !models.SupportedQuestionTypes[q.Type] {
		errors = append(errors, ValidationError{
			Field:   "question_id",
			Message: fmt.Sprintf("question type %q does not accept responses", q.Type),
			Value:   q.Type,
			Rule:    "question_type",
		})
	}

	return errors
}

// ValidateJobStatusTransition validates job lifecycle moves.
func (bv *BusinessValidator) ValidateJobStatusTransition(current, next models.JobStatus) ValidationErrors {
	var errors ValidationErrors

	if !models.CanTransition(current, next) {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("cannot transition from %s to %s", current, next),
			Value:   next,
			Rule:    "status_transition",
		})
	}

	return errors
}

// ValidateBulkRow validates one candidate row of a bulk upload.
func (bv *BusinessValidator) ValidateBulkRow(row *models.BulkCreateRow) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(row.FirstName) == "" && strings.TrimSpace(row.LastName) == "" {
		errors = append(errors, ValidationError{
			Field:   "first_name",
			Message: "row has no name",
			Rule:    "business_logic",
		})
	}
	if strings.TrimSpace(row.Email) == "" {
		errors = append(errors, ValidationError{
			Field:   "email",
			Message: "is required",
			Rule:    "required",
		})
	} else if !strings.Contains(row.Email, "@") {
		errors = append(errors, ValidationError{
			Field:   "email",
			Message: "must be a valid email address",
			Value:   row.Email,
			Rule:    "email",
		})
	}

	return errors
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// question type validation
	bv.validate.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
		return models.SupportedQuestionTypes[models.QuestionType(fl.Field().String())]
	})

	// template status validation
	bv.validate.RegisterValidation("template_status", func(fl validator.FieldLevel) bool {
		switch models.TemplateStatus(fl.Field().String()) {
		case models.TemplateDraft, models.TemplatePublished, models.TemplateArchived:
			return true
		}
		return false
	})

	// template name validation (1-200 characters, non-blank)
	bv.validate.RegisterValidation("template_name", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		return len(name) >= 1 && len(name) <= 200
	})
}
