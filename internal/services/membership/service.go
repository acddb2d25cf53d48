// Package membership manages the wallet roster: roles, permissions,
// invitations and voting weights. Permission checks elsewhere always
// re-derive from the Member row written here.
package membership

import (
	"context"
	"time"

	apperr "chama/internal/errors"
	"chama/internal/models"
	"chama/internal/repositories"
	"chama/internal/store"
	"chama/internal/validation"

	"github.com/google/uuid"
)

// InvitationTTL is how long an invitation token stays valid.
const InvitationTTL = 7 * 24 * time.Hour

// Service is the membership registry interface.
type Service interface {
	AddMember(ctx context.Context, input AddMemberInput) (*models.Member, error)
	GetMembers(ctx context.Context, walletID string) ([]models.Member, error)
	InviteMember(ctx context.Context, input InviteMemberInput) (*models.Invitation, error)
	AcceptInvitation(ctx context.Context, token, userID string) (string, error)
}

type service struct {
	store       *store.Store
	wallets     repositories.WalletRepository
	members     repositories.MemberRepository
	invitations repositories.InvitationRepository
	registry    *repositories.Registry
}

// NewService creates a new membership service.
func NewService(st *store.Store, registry *repositories.Registry) Service {
	if st == nil {
		panic("store is required")
	}
	return &service{
		store:       st,
		wallets:     repositories.NewWalletRepository(),
		members:     repositories.NewMemberRepository(),
		invitations: repositories.NewInvitationRepository(),
		registry:    registry,
	}
}

func (s *service) AddMember(ctx context.Context, input AddMemberInput) (*models.Member, error) {
	if input.Role == "" {
		input.Role = models.RoleMember
	}
	if err := validation.Role(input.Role); err != nil {
		return nil, err
	}
	if err := validation.Required("user_id", input.UserID); err != nil {
		return nil, err
	}
	if input.VotingWeight <= 0 {
		input.VotingWeight = 1
	}

	member := &models.Member{
		UserID:       input.UserID,
		WalletID:     input.WalletID,
		Role:         input.Role,
		Status:       models.MemberStatusActive,
		Permissions:  models.DefaultPermissions(input.Role),
		VotingWeight: input.VotingWeight,
		JoinedAt:     time.Now().UTC(),
	}

	err := s.store.Update(func(tx *store.Tx) error {
		if _, err := s.wallets.Get(tx, input.WalletID); err != nil {
			return err
		}
		actor, err := s.members.Get(tx, input.WalletID, input.AddedBy)
		if err != nil {
			return apperr.ErrInsufficientPermissions
		}
		if !actor.IsActive() || !actor.Permissions.ManageMembers {
			return apperr.ErrInsufficientPermissions
		}
		exists, err := s.members.Exists(tx, input.WalletID, input.UserID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.ErrMemberExists
		}
		return s.members.Put(tx, member)
	})
	if err != nil {
		return nil, err
	}

	s.registry.AddUserWallet(ctx, input.UserID, input.WalletID)
	return member, nil
}

func (s *service) GetMembers(ctx context.Context, walletID string) ([]models.Member, error) {
	var members []models.Member
	err := s.store.View(func(tx *store.Tx) error {
		if _, err := s.wallets.Get(tx, walletID); err != nil {
			return err
		}
		list, err := s.members.ListByWallet(tx, walletID)
		if err != nil {
			return err
		}
		members = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (s *service) InviteMember(ctx context.Context, input InviteMemberInput) (*models.Invitation, error) {
	if input.Role == "" {
		input.Role = models.RoleMember
	}
	if err := validation.Role(input.Role); err != nil {
		return nil, err
	}
	if err := validation.Required("invited_email", input.InvitedEmail); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invitation := &models.Invitation{
		ID:           repositories.NewTimeID(now),
		WalletID:     input.WalletID,
		InvitedEmail: input.InvitedEmail,
		InvitedBy:    input.InvitedBy,
		Role:         input.Role,
		Token:        uuid.NewString(),
		ExpiresAt:    now.Add(InvitationTTL),
		Status:       models.InvitationStatusPending,
		CreatedAt:    now,
	}

	err := s.store.Update(func(tx *store.Tx) error {
		if _, err := s.wallets.Get(tx, input.WalletID); err != nil {
			return err
		}
		inviter, err := s.members.Get(tx, input.WalletID, input.InvitedBy)
		if err != nil {
			return apperr.ErrInsufficientPermissions
		}
		if !inviter.IsActive() || !inviter.Permissions.ManageMembers {
			return apperr.ErrInsufficientPermissions
		}
		return s.invitations.Put(tx, invitation)
	})
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

// AcceptInvitation redeems a token and creates the Member row with
// role-derived default permissions. Expired and already-processed tokens
// fail with distinct reasons so the caller can render the right message.
func (s *service) AcceptInvitation(ctx context.Context, token, userID string) (string, error) {
	if err := validation.Required("user_id", userID); err != nil {
		return "", err
	}

	var walletID string
	err := s.store.Update(func(tx *store.Tx) error {
		invitation, err := s.invitations.GetByToken(tx, token)
		if err != nil {
			return err
		}
		if invitation.Status != models.InvitationStatusPending {
			if invitation.Status == models.InvitationStatusExpired {
				return apperr.ErrInvitationExpired
			}
			return apperr.ErrInvitationProcessed
		}

		now := time.Now().UTC()
		// A token is valid only while now is strictly before its expiry.
		if !now.Before(invitation.ExpiresAt) {
			invitation.Status = models.InvitationStatusExpired
			if err := s.invitations.Put(tx, invitation); err != nil {
				return err
			}
			return apperr.ErrInvitationExpired
		}

		exists, err := s.members.Exists(tx, invitation.WalletID, userID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.ErrInvitationProcessed
		}

		member := &models.Member{
			UserID:       userID,
			WalletID:     invitation.WalletID,
			Role:         invitation.Role,
			Status:       models.MemberStatusActive,
			Permissions:  models.DefaultPermissions(invitation.Role),
			VotingWeight: 1,
			JoinedAt:     now,
		}
		if err := s.members.Put(tx, member); err != nil {
			return err
		}

		invitation.Status = models.InvitationStatusAccepted
		invitation.AcceptedBy = userID
		invitation.AcceptedAt = &now
		if err := s.invitations.Put(tx, invitation); err != nil {
			return err
		}

		walletID = invitation.WalletID
		return nil
	})
	if err != nil {
		return "", err
	}

	s.registry.AddUserWallet(ctx, userID, walletID)
	return walletID, nil
}
