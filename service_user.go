package webcore

import (
	"context"
	"net/url"
	"time"
)

const userBase = "/user-service/v1"

// FetchUnreadCount returns the unread-notification badge count, cached.
func (c *Client) FetchUnreadCount(ctx context.Context) (int64, error) {
	out, err := cachedGet(ctx, c, cacheKeyUnreadNotifications, c.config.Cache.ReferenceTTL, func(ctx context.Context) (int64, error) {
		var count int64
		if err := c.get(ctx, userBase+"/notifications/unread-count", nil, &count); err != nil {
			return 0, err
		}
		return count, nil
	})
	if err != nil {
		return 0, c.serviceError(ctx, err, "could not load notifications")
	}
	return out, nil
}

// FetchNotifications returns the recent-notification dropdown list, cached.
func (c *Client) FetchNotifications(ctx context.Context) ([]Notification, error) {
	out, err := cachedGet(ctx, c, cacheKeyUserNotifications, c.config.Cache.ReferenceTTL, func(ctx context.Context) ([]Notification, error) {
		var notifications []Notification
		if err := c.get(ctx, userBase+"/notifications", nil, &notifications); err != nil {
			return nil, err
		}
		return notifications, nil
	})
	if err != nil {
		return nil, c.serviceError(ctx, err, "could not load notifications")
	}
	return out, nil
}

// FetchAllNotifications pages through the full notification history. Not
// cached: the history view always reads fresh.
func (c *Client) FetchAllNotifications(ctx context.Context, query ListQuery) (*Page[Notification], error) {
	var page Page[Notification]
	if err := c.get(ctx, userBase+"/notifications/all", query.pageValues(), &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load notifications")
	}
	return &page, nil
}

// MarkAllRead marks every notification read and invalidates both
// notification cache keys.
func (c *Client) MarkAllRead(ctx context.Context) error {
	if err := c.put(ctx, userBase+"/notifications/mark-all-read", nil, nil); err != nil {
		return c.serviceError(ctx, err, "could not update notifications")
	}
	c.invalidateNotifications(ctx)
	return nil
}

// MarkRead marks one notification read and invalidates both notification
// cache keys.
func (c *Client) MarkRead(ctx context.Context, notificationID string) error {
	if err := c.put(ctx, userBase+"/notifications/"+notificationID+"/read", nil, nil); err != nil {
		return c.serviceError(ctx, err, "could not update notification")
	}
	c.invalidateNotifications(ctx)
	return nil
}

func (c *Client) invalidateNotifications(ctx context.Context) {
	_ = c.cache.Delete(ctx, cacheKeyUnreadNotifications)
	_ = c.cache.Delete(ctx, cacheKeyUserNotifications)
}

// FetchUser reads the caller's profile through the indefinite mirror: the
// cached copy never expires and is rewritten by the profile mutations.
func (c *Client) FetchUser(ctx context.Context) (*UserProfile, error) {
	out, err := cachedGet(ctx, c, cacheKeyUserProfile, 0, func(ctx context.Context) (UserProfile, error) {
		var profile UserProfile
		if err := c.get(ctx, userBase+"/users/me", nil, &profile); err != nil {
			return UserProfile{}, err
		}
		return profile, nil
	})
	if err != nil {
		return nil, c.serviceError(ctx, err, "could not load profile")
	}
	return &out, nil
}

// UpdateUserProfile mutates the profile and refreshes the mirror with the
// backend's response.
func (c *Client) UpdateUserProfile(ctx context.Context, update ProfileUpdate) (*UserProfile, error) {
	var profile UserProfile
	if err := c.put(ctx, userBase+"/users/me", update, &profile); err != nil {
		return nil, c.serviceError(ctx, err, "could not update profile")
	}
	_ = c.cache.Put(ctx, cacheKeyUserProfile, profile, 0)
	return &profile, nil
}

// UpdateUserPassword changes the caller's password. The session stays valid;
// the backend decides whether other sessions are revoked.
func (c *Client) UpdateUserPassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}
	if err := c.put(ctx, userBase+"/users/me/password", body, nil); err != nil {
		return c.serviceError(ctx, err, "could not change password")
	}
	return nil
}

// FetchUserDevices lists registered notification devices, cached.
func (c *Client) FetchUserDevices(ctx context.Context) ([]UserDevice, error) {
	out, err := cachedGet(ctx, c, cacheKeyUserDevices, c.config.Cache.ReferenceTTL, func(ctx context.Context) ([]UserDevice, error) {
		var devices []UserDevice
		if err := c.get(ctx, userBase+"/users/me/devices", nil, &devices); err != nil {
			return nil, err
		}
		return devices, nil
	})
	if err != nil {
		return nil, c.serviceError(ctx, err, "could not load devices")
	}
	return out, nil
}

// DeleteUserDevice unregisters a device and invalidates the cached list.
func (c *Client) DeleteUserDevice(ctx context.Context, deviceID string) error {
	if err := c.del(ctx, userBase+"/users/me/devices/"+deviceID, nil); err != nil {
		return c.serviceError(ctx, err, "could not remove device")
	}
	_ = c.cache.Delete(ctx, cacheKeyUserDevices)
	return nil
}

// Enable2FA turns on two-factor authentication and rewrites the mirror's
// flag so the settings screen reflects it without a refetch.
func (c *Client) Enable2FA(ctx context.Context, passcode string) error {
	body := map[string]string{"passcode": passcode}
	if err := c.put(ctx, userBase+"/users/me/2fa/enable", body, nil); err != nil {
		return c.serviceError(ctx, err, "could not enable two-factor authentication")
	}
	c.rewriteProfile2FA(ctx, true)
	return nil
}

// Disable2FA turns off two-factor authentication and rewrites the mirror's
// flag.
func (c *Client) Disable2FA(ctx context.Context, passcode string) error {
	body := map[string]string{"passcode": passcode}
	if err := c.put(ctx, userBase+"/users/me/2fa/disable", body, nil); err != nil {
		return c.serviceError(ctx, err, "could not disable two-factor authentication")
	}
	c.rewriteProfile2FA(ctx, false)
	return nil
}

func (c *Client) rewriteProfile2FA(ctx context.Context, enabled bool) {
	var profile UserProfile
	hit, err := c.cache.Get(ctx, cacheKeyUserProfile, &profile)
	if err != nil || !hit {
		return
	}
	profile.TwoFAEnabled = enabled
	_ = c.cache.Put(ctx, cacheKeyUserProfile, profile, 0)
}

// FetchUserActivities pages through the caller's activity log.
func (c *Client) FetchUserActivities(ctx context.Context, query ListQuery) (*Page[UserActivity], error) {
	var page Page[UserActivity]
	if err := c.get(ctx, userBase+"/users/me/activities", query.values(), &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load activities")
	}
	return &page, nil
}

// FetchUsers lists platform users, admin scope.
func (c *Client) FetchUsers(ctx context.Context, query ListQuery) (*Page[UserProfile], error) {
	var page Page[UserProfile]
	if err := c.get(ctx, userBase+"/users", query.values(), &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load users")
	}
	return &page, nil
}

// UpdateUserRoles describes the updateuserroles operation and its observable behavior.
//
// UpdateUserRoles may return an error when input validation, dependency calls, or security checks fail.
// UpdateUserRoles does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UpdateUserRoles(ctx context.Context, userID string, roles []string) error {
	body := map[string][]string{"roles": roles}
	if err := c.put(ctx, userBase+"/users/"+userID+"/roles", body, nil); err != nil {
		return c.serviceError(ctx, err, "could not update roles")
	}
	return nil
}

// UpdateUserStatus describes the updateuserstatus operation and its observable behavior.
//
// UpdateUserStatus may return an error when input validation, dependency calls, or security checks fail.
// UpdateUserStatus does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UpdateUserStatus(ctx context.Context, userID, status string) error {
	body := map[string]string{"status": status}
	if err := c.put(ctx, userBase+"/users/"+userID+"/status", body, nil); err != nil {
		return c.serviceError(ctx, err, "could not update user status")
	}
	return nil
}

// UnblockUser describes the unblockuser operation and its observable behavior.
//
// UnblockUser may return an error when input validation, dependency calls, or security checks fail.
// UnblockUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UnblockUser(ctx context.Context, userID string) error {
	if err := c.put(ctx, userBase+"/users/"+userID+"/unblock", nil, nil); err != nil {
		return c.serviceError(ctx, err, "could not unblock user")
	}
	return nil
}

// CreateTicket opens a support ticket.
func (c *Client) CreateTicket(ctx context.Context, message string) (*Ticket, error) {
	body := map[string]string{"message": message}
	var ticket Ticket
	if err := c.post(ctx, userBase+"/tickets", body, &ticket); err != nil {
		return nil, c.serviceError(ctx, err, "could not create ticket")
	}
	return &ticket, nil
}

// UpdateTicket mutates a ticket's status, priority, or message.
func (c *Client) UpdateTicket(ctx context.Context, ticketID string, update TicketUpdate) (*Ticket, error) {
	var ticket Ticket
	if err := c.put(ctx, userBase+"/tickets/"+ticketID, update, &ticket); err != nil {
		return nil, c.serviceError(ctx, err, "could not update ticket")
	}
	return &ticket, nil
}

// AssignTicket assigns a ticket to a support agent, admin scope.
func (c *Client) AssignTicket(ctx context.Context, ticketID, assigneeID string) (*Ticket, error) {
	body := map[string]string{"assignedTo": assigneeID}
	var ticket Ticket
	if err := c.put(ctx, userBase+"/tickets/"+ticketID+"/assign", body, &ticket); err != nil {
		return nil, c.serviceError(ctx, err, "could not assign ticket")
	}
	return &ticket, nil
}

// FetchUserTickets pages through the caller's own tickets using the held
// session identity. Fails with [ErrSessionRequired] when no session is
// active.
func (c *Client) FetchUserTickets(ctx context.Context, query ListQuery) (*Page[Ticket], error) {
	userID, _ := c.session.Identity()
	if userID == "" {
		return nil, ErrSessionRequired
	}

	var page Page[Ticket]
	if err := c.get(ctx, userBase+"/tickets/users/"+userID, query.pageValues(), &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load tickets")
	}
	return &page, nil
}

// FetchTickets pages through all tickets, admin scope. The rsql filter in the
// query narrows by status, priority, or assignee.
func (c *Client) FetchTickets(ctx context.Context, query ListQuery) (*Page[Ticket], error) {
	var page Page[Ticket]
	if err := c.get(ctx, userBase+"/tickets", query.values(), &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load tickets")
	}
	return &page, nil
}

// FetchTicketsSummary aggregates ticket counts over a date range, admin
// scope.
func (c *Client) FetchTicketsSummary(ctx context.Context, from, to time.Time) (*TicketsSummary, error) {
	v := url.Values{}
	v.Set("startDate", from.Format(time.RFC3339))
	v.Set("endDate", to.Format(time.RFC3339))

	var summary TicketsSummary
	if err := c.get(ctx, userBase+"/tickets/summary", v, &summary); err != nil {
		return nil, c.serviceError(ctx, err, "could not load tickets summary")
	}
	return &summary, nil
}
