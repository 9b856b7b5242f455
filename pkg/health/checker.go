package health

import "time"

// NewChecker creates a checker with no checks registered
func NewChecker() *Checker {
	return &Checker{
		checks:      make(map[string]CheckFunc),
		readyChecks: make(map[string]CheckFunc),
		started:     time.Now(),
	}
}

// Register adds a check to the health response
func (c *Checker) Register(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// RegisterReadiness adds a check to the readiness response
func (c *Checker) RegisterReadiness(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readyChecks[name] = check
}

// Check runs every health check
func (c *Checker) Check() Response {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.perform(c.checks)
}

// CheckReadiness runs every readiness check
func (c *Checker) CheckReadiness() Response {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.perform(c.readyChecks)
}

func (c *Checker) perform(checks map[string]CheckFunc) Response {
	resp := Response{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Checks:    make(map[string]Check, len(checks)),
		Uptime:    time.Since(c.started),
	}

	for name, fn := range checks {
		start := time.Now()
		check := fn()
		check.Duration = time.Since(start)
		if check.LastChecked.IsZero() {
			check.LastChecked = start
		}
		if check.Name == "" {
			check.Name = name
		}
		resp.Checks[name] = check

		switch check.Status {
		case StatusUnhealthy:
			resp.Status = StatusUnhealthy
		case StatusDegraded:
			if resp.Status != StatusUnhealthy {
				resp.Status = StatusDegraded
			}
		}
	}

	return resp
}
