package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/middleware"
	"refugee-portal/internal/service/assessment"
	"refugee-portal/internal/service/casenote"
	"refugee-portal/internal/service/referral"
)

// CaseworkHandler serves assessments, referrals and case notes.
type CaseworkHandler struct {
	assessmentService assessment.Service
	referralService   referral.Service
	noteService       casenote.Service
}

func NewCaseworkHandler(assessmentService assessment.Service, referralService referral.Service, noteService casenote.Service) *CaseworkHandler {
	return &CaseworkHandler{
		assessmentService: assessmentService,
		referralService:   referralService,
		noteService:       noteService,
	}
}

func (h *CaseworkHandler) ListAssessments(c *fiber.Ctx) error {
	householdID, err := queryUUID(c, "household_id")
	if err != nil {
		return err
	}
	assessorID, err := queryUUID(c, "assessor_id")
	if err != nil {
		return err
	}

	filter := domain.AssessmentFilter{HouseholdID: householdID, AssessorID: assessorID}
	if status := domain.AssessmentStatus(c.Query("status")); status != "" {
		switch status {
		case domain.AssessmentPending, domain.AssessmentInProgress, domain.AssessmentCompleted:
			filter.Status = &status
		default:
			return middleware.BadRequest("Invalid status")
		}
	}
	if c.QueryBool("overdue") {
		today := domain.Today()
		filter.OverdueAt = &today
	}

	result, err := h.assessmentService.List(c.UserContext(), middleware.GetActor(c), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CaseworkHandler) GetAssessment(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	a, err := h.assessmentService.GetByID(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(a)
}

func (h *CaseworkHandler) CreateAssessment(c *fiber.Ctx) error {
	var input domain.CreateAssessmentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	a, err := h.assessmentService.Create(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *CaseworkHandler) UpdateAssessment(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateAssessmentInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	a, err := h.assessmentService.Update(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(a)
}

func (h *CaseworkHandler) DeleteAssessment(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.assessmentService.Delete(c.UserContext(), middleware.GetActor(c), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CaseworkHandler) ListReferrals(c *fiber.Ctx) error {
	householdID, err := queryUUID(c, "household_id")
	if err != nil {
		return err
	}

	filter := domain.ReferralFilter{HouseholdID: householdID}
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Statuses = append(filter.Statuses, domain.ReferralStatus(part))
			}
		}
	}

	result, err := h.referralService.List(c.UserContext(), middleware.GetActor(c), filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CaseworkHandler) GetReferral(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	r, err := h.referralService.GetByID(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(r)
}

func (h *CaseworkHandler) CreateReferral(c *fiber.Ctx) error {
	var input domain.CreateReferralInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	r, err := h.referralService.Create(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *CaseworkHandler) UpdateReferral(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateReferralInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	r, err := h.referralService.Update(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(r)
}

func (h *CaseworkHandler) DeleteReferral(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.referralService.Delete(c.UserContext(), middleware.GetActor(c), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CaseworkHandler) ListNotes(c *fiber.Ctx) error {
	householdID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.noteService.List(c.UserContext(), middleware.GetActor(c), householdID, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CaseworkHandler) CreateNote(c *fiber.Ctx) error {
	householdID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var input domain.CreateCaseNoteInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	note, err := h.noteService.Create(c.UserContext(), middleware.GetActor(c), householdID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}
