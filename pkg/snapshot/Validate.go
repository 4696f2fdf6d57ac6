package snapshot

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/simplecontainer/sapha/pkg/static"
)

var required = map[string][]string{
	static.COMPONENT_NTP:      {"servers"},
	static.COMPONENT_WATCHDOG: {"module"},
	static.COMPONENT_FENCING:  {"device"},
	static.COMPONENT_CLUSTER:  {"cluster_name"},
	static.COMPONENT_HANA:     {"sid", "instance", "site_primary", "site_secondary", "virtual_ip"},
}

var (
	sidPattern      = regexp.MustCompile(`^[A-Z][A-Z0-9]{2}$`)
	instancePattern = regexp.MustCompile(`^[0-9]{2}$`)
)

// Validate returns human readable problems; an empty slice means the snapshot can be applied.
func (s *Snapshot) Validate() []string {
	messages := make([]string, 0)

	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors

		if errors.As(err, &validationErrors) {
			for _, fe := range validationErrors {
				messages = append(messages, fmt.Sprintf("%s: failed on '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
		} else {
			messages = append(messages, err.Error())
		}
	}

	messages = append(messages, s.validateMembers()...)
	messages = append(messages, s.validateOrder()...)

	for _, c := range s.Components {
		messages = append(messages, c.validate()...)
	}

	return messages
}

// Check wraps the Validate messages into one ERROR_INVALID error.
func (s *Snapshot) Check() error {
	messages := s.Validate()

	if len(messages) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", ERROR_INVALID, strings.Join(messages, "; "))
}

func (s *Snapshot) validateMembers() []string {
	messages := make([]string, 0)
	seen := make(map[string]bool)

	for _, m := range s.Members {
		if seen[m.Host] {
			messages = append(messages, fmt.Sprintf("member %s is listed more than once", m.Host))
		}

		seen[m.Host] = true
	}

	return messages
}

func (s *Snapshot) validateOrder() []string {
	messages := make([]string, 0)
	seen := make(map[string]bool)
	last := -1

	for _, c := range s.Components {
		if seen[c.ID] {
			messages = append(messages, fmt.Sprintf("component %s is listed more than once", c.ID))
			continue
		}

		seen[c.ID] = true

		position := slices.Index(static.COMPONENT_ORDER, c.ID)

		if position == -1 {
			continue
		}

		if position < last {
			messages = append(messages, fmt.Sprintf("component %s is out of order, expected order is %v", c.ID, static.COMPONENT_ORDER))
		}

		last = position
	}

	return messages
}

func (c Component) validate() []string {
	messages := make([]string, 0)

	if !c.Configured {
		messages = append(messages, fmt.Sprintf("component %s is not configured", c.ID))
	}

	for _, key := range required[c.ID] {
		if c.Params[key] == "" {
			messages = append(messages, fmt.Sprintf("component %s: missing required parameter %s", c.ID, key))
		}
	}

	if c.ID == static.COMPONENT_HANA {
		if sid := c.Params["sid"]; sid != "" && !sidPattern.MatchString(sid) {
			messages = append(messages, fmt.Sprintf("component hana: invalid SID %q", sid))
		}

		if instance := c.Params["instance"]; instance != "" && !instancePattern.MatchString(instance) {
			messages = append(messages, fmt.Sprintf("component hana: invalid instance number %q", instance))
		}
	}

	return messages
}
