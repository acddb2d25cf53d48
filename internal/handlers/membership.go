package handlers

import (
	"chama/internal/middleware"
	"chama/internal/services/membership"
	"chama/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type MembershipHandler struct {
	membershipService membership.Service
}

func NewMembershipHandler(membershipService membership.Service) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

func (h *MembershipHandler) GetMembers(c *fiber.Ctx) error {
	members, err := h.membershipService.GetMembers(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"members": members})
}

func (h *MembershipHandler) AddMember(c *fiber.Ctx) error {
	var input struct {
		UserID       string `json:"user_id"`
		Role         string `json:"role"`
		AddedBy      string `json:"added_by"`
		VotingWeight int64  `json:"voting_weight"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	member, err := h.membershipService.AddMember(c.Context(), membership.AddMemberInput{
		WalletID:     c.Params("id"),
		UserID:       input.UserID,
		Role:         input.Role,
		AddedBy:      middleware.CallerID(c, input.AddedBy),
		VotingWeight: input.VotingWeight,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"member": member})
}

func (h *MembershipHandler) InviteMember(c *fiber.Ctx) error {
	var input struct {
		InvitedEmail string `json:"invited_email"`
		InvitedBy    string `json:"invited_by"`
		Role         string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	invitation, err := h.membershipService.InviteMember(c.Context(), membership.InviteMemberInput{
		WalletID:     c.Params("id"),
		InvitedEmail: input.InvitedEmail,
		InvitedBy:    middleware.CallerID(c, input.InvitedBy),
		Role:         input.Role,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{
		"invitation_id": invitation.ID,
		"token":         invitation.Token,
		"expires_at":    invitation.ExpiresAt,
	})
}

func (h *MembershipHandler) AcceptInvitation(c *fiber.Ctx) error {
	var input struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid_request", "invalid request format")
	}

	walletID, err := h.membershipService.AcceptInvitation(c.Context(), input.Token,
		middleware.CallerID(c, input.UserID))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.Map{"wallet_id": walletID})
}
