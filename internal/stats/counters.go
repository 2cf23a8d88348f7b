package stats

// FrontendCounters holds the per-compilation counters. The struct is
// allocated lazily by the Reporter; a counter only exists in the output
// once its domain has been touched. Fields are incremented directly by the
// code paths doing the counted work and never decremented.
type FrontendCounters struct {
	NumProcessFailures        int64
	NumSourceLines            int64
	NumSourceLinesPerSecond   int64
	NumLinkLibraries          int64
	NumLoadedModules          int64
	NumImportedModules        int64
	NumDeclsParsed            int64
	NumDeclsTypechecked       int64
	NumFunctionsTypechecked   int64
	NumExprsTypechecked       int64
	NumGenericSpecializations int64
	NumIRFunctionsEmitted     int64
}

// DriverCounters holds the per-invocation orchestration counters.
type DriverCounters struct {
	NumProcessFailures   int64
	NumDriverJobsRun     int64
	NumDriverJobsSkipped int64
	ChildrenMaxRSS       int64
}

// counterDesc ties a counter name to its storage within a counter struct.
// One table per domain drives delta computation, baseline updates and
// snapshot emission, so counters are declared in exactly one place.
type counterDesc[T any] struct {
	name  string
	field func(*T) *int64
}

var frontendCounterTable = []counterDesc[FrontendCounters]{
	{"NumProcessFailures", func(c *FrontendCounters) *int64 { return &c.NumProcessFailures }},
	{"NumSourceLines", func(c *FrontendCounters) *int64 { return &c.NumSourceLines }},
	{"NumSourceLinesPerSecond", func(c *FrontendCounters) *int64 { return &c.NumSourceLinesPerSecond }},
	{"NumLinkLibraries", func(c *FrontendCounters) *int64 { return &c.NumLinkLibraries }},
	{"NumLoadedModules", func(c *FrontendCounters) *int64 { return &c.NumLoadedModules }},
	{"NumImportedModules", func(c *FrontendCounters) *int64 { return &c.NumImportedModules }},
	{"NumDeclsParsed", func(c *FrontendCounters) *int64 { return &c.NumDeclsParsed }},
	{"NumDeclsTypechecked", func(c *FrontendCounters) *int64 { return &c.NumDeclsTypechecked }},
	{"NumFunctionsTypechecked", func(c *FrontendCounters) *int64 { return &c.NumFunctionsTypechecked }},
	{"NumExprsTypechecked", func(c *FrontendCounters) *int64 { return &c.NumExprsTypechecked }},
	{"NumGenericSpecializations", func(c *FrontendCounters) *int64 { return &c.NumGenericSpecializations }},
	{"NumIRFunctionsEmitted", func(c *FrontendCounters) *int64 { return &c.NumIRFunctionsEmitted }},
}

var driverCounterTable = []counterDesc[DriverCounters]{
	{"NumProcessFailures", func(c *DriverCounters) *int64 { return &c.NumProcessFailures }},
	{"NumDriverJobsRun", func(c *DriverCounters) *int64 { return &c.NumDriverJobsRun }},
	{"NumDriverJobsSkipped", func(c *DriverCounters) *int64 { return &c.NumDriverJobsSkipped }},
	{"ChildrenMaxRSS", func(c *DriverCounters) *int64 { return &c.ChildrenMaxRSS }},
}

// Registry is the lazily allocated storage for the two counter domains.
// Once a domain is allocated it lives until the run ends; there is no
// removal or reset. Not safe for concurrent use.
type Registry struct {
	frontend *FrontendCounters
	driver   *DriverCounters
}

// Frontend returns the frontend domain, allocating it on first use.
func (r *Registry) Frontend() *FrontendCounters {
	if r.frontend == nil {
		r.frontend = &FrontendCounters{}
	}
	return r.frontend
}

// Driver returns the driver domain, allocating it on first use.
func (r *Registry) Driver() *DriverCounters {
	if r.driver == nil {
		r.driver = &DriverCounters{}
	}
	return r.driver
}

// HasFrontend reports whether the frontend domain has been allocated.
func (r *Registry) HasFrontend() bool { return r.frontend != nil }

// HasDriver reports whether the driver domain has been allocated.
func (r *Registry) HasDriver() bool { return r.driver != nil }
