package kernel

import (
	"errors"
	"fmt"

	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the role the auth collaborator assigns to a principal.
// The string values are shared with the gateway and must not change.
type Role string

const (
	RoleCustomer   Role = "user"
	RoleRestaurant Role = "restaurant"
	RoleCourier    Role = "deliveryman"
	RoleMarketing  Role = "marketing"
)

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleCourier, RoleMarketing:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

// Actor is the authenticated principal on whose behalf a core operation runs.
// Restaurant actors carry the restaurant they operate; other roles carry none.
type Actor struct {
	id           UUID
	role         Role
	restaurantID *UUID

	guard guard.ConstructorGuard
}

// NewActor builds an Actor. restaurantID is required for RoleRestaurant and ignored otherwise.
func NewActor(id UUID, role Role, restaurantID *UUID) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	actor := Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}

	if role == RoleRestaurant {
		if restaurantID == nil {
			return Actor{}, errs.NewValueIsRequiredError("restaurant id")
		}
		if err := restaurantID.Validate(); err != nil {
			return Actor{}, err
		}
		rid := *restaurantID
		actor.restaurantID = &rid
	}

	return actor, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// RestaurantID returns the operated restaurant, nil for non-restaurant actors.
func (a Actor) RestaurantID() *UUID {
	return a.restaurantID
}

func (a Actor) Is(role Role) bool {
	return a.role == role
}

// OperatesRestaurant reports whether a is a restaurant actor operating restaurantID.
func (a Actor) OperatesRestaurant(restaurantID UUID) bool {
	return a.role == RoleRestaurant && a.restaurantID != nil && a.restaurantID.IsEqual(restaurantID)
}
