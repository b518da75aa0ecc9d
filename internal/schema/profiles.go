package schema

import (
	"fmt"
	"sort"
)

// Built-in profiles, one per deployment generation. The caller selects a
// profile explicitly; nothing is ever inferred from the live database.
const (
	// ProfileLegacy matches the first-generation schema: separate
	// students and recruiters tables alongside users.
	ProfileLegacy = "legacy"
	// ProfileConsolidated matches the second-generation schema that
	// folded student and recruiter data into users. This is the
	// superset the application's request handlers depend on.
	ProfileConsolidated = "consolidated"
)

// DefaultProfile is used when the caller does not name one.
const DefaultProfile = ProfileConsolidated

var builtins = map[string]*Profile{
	ProfileLegacy:       legacyProfile(),
	ProfileConsolidated: consolidatedProfile(),
}

// Builtin returns the built-in profile with the given name.
func Builtin(name string) (*Profile, error) {
	profile, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q (available: %v)", name, BuiltinNames())
	}
	return profile, nil
}

// BuiltinNames returns the names of all built-in profiles, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func legacyProfile() *Profile {
	return &Profile{
		Name:        ProfileLegacy,
		Version:     "v1",
		Description: "First-generation placement schema with separate students and recruiters tables",
		Tables: []TableSpec{
			{
				Name: "users",
				Columns: []ColumnSpec{
					{Name: "username", Type: TypeText, NotNull: true, Unique: true},
					{Name: "email", Type: TypeText, NotNull: true, Unique: true},
					{Name: "password", Type: TypeText, NotNull: true},
					{Name: "role", Type: TypeText, NotNull: true},
				},
			},
			{
				Name: "students",
				Columns: []ColumnSpec{
					{Name: "user_id", Type: TypeInteger, NotNull: true, ForeignKey: &ForeignKey{Table: "users"}},
					{Name: "name", Type: TypeText, NotNull: true},
					{Name: "email", Type: TypeText, NotNull: true, Unique: true},
					{Name: "university", Type: TypeText},
					{Name: "degree", Type: TypeText},
					{Name: "department", Type: TypeText},
					{Name: "graduation_year", Type: TypeInteger},
					{Name: "resume", Type: TypeText},
				},
			},
			{
				Name: "recruiters",
				Columns: []ColumnSpec{
					{Name: "user_id", Type: TypeInteger, NotNull: true, ForeignKey: &ForeignKey{Table: "users"}},
					{Name: "company_name", Type: TypeText, NotNull: true},
					{Name: "email", Type: TypeText, NotNull: true, Unique: true},
					{Name: "website", Type: TypeText},
					{Name: "phone", Type: TypeText},
					{Name: "linkedin", Type: TypeText},
				},
			},
			{
				Name: "jobs",
				Columns: []ColumnSpec{
					{Name: "recruiter_id", Type: TypeInteger, NotNull: true, ForeignKey: &ForeignKey{Table: "recruiters"}},
					{Name: "title", Type: TypeText, NotNull: true},
					{Name: "description", Type: TypeText},
					{Name: "location", Type: TypeText},
					{Name: "salary", Type: TypeText},
					{Name: "interview_date", Type: TypeText},
					{Name: "interview_time", Type: TypeText},
					{Name: "interview_place", Type: TypeText},
				},
			},
			{
				Name: "applications",
				Columns: []ColumnSpec{
					{Name: "job_id", Type: TypeInteger, NotNull: true, ForeignKey: &ForeignKey{Table: "jobs"}},
					{Name: "student_id", Type: TypeInteger, NotNull: true, ForeignKey: &ForeignKey{Table: "students"}},
					{Name: "status", Type: TypeText, Default: strptr("Pending")},
				},
			},
		},
	}
}

func consolidatedProfile() *Profile {
	return &Profile{
		Name:        ProfileConsolidated,
		Version:     "v2",
		Description: "Consolidated placement schema: student and recruiter data folded into users",
		Tables: []TableSpec{
			{
				Name: "users",
				Columns: []ColumnSpec{
					{Name: "username", Type: TypeText, Unique: true},
					{Name: "email", Type: TypeText},
					{Name: "password", Type: TypeText},
					{Name: "role", Type: TypeText},
					{Name: "resume", Type: TypeText},
					{Name: "city", Type: TypeText},
					{Name: "state", Type: TypeText},
					{Name: "country", Type: TypeText},
					{Name: "job_preference", Type: TypeText},
					{Name: "bio", Type: TypeText},
					{Name: "company", Type: TypeText},
					{Name: "phone", Type: TypeText},
					{Name: "website", Type: TypeText},
					{Name: "linkedin", Type: TypeText},
					{Name: "university", Type: TypeText},
					{Name: "degree", Type: TypeText},
					{Name: "graduation_year", Type: TypeText},
				},
			},
			{
				Name: "jobs",
				Columns: []ColumnSpec{
					// recruiter_id is the authoritative link to the posting
					// user; posted_by keeps the historical username string.
					{Name: "recruiter_id", Type: TypeInteger, ForeignKey: &ForeignKey{Table: "users"}},
					{Name: "title", Type: TypeText},
					{Name: "company", Type: TypeText},
					{Name: "company_description", Type: TypeText},
					{Name: "location", Type: TypeText},
					{Name: "job_type", Type: TypeText},
					{Name: "salary", Type: TypeText},
					{Name: "description", Type: TypeText},
					{Name: "post_date", Type: TypeText, Default: strptr("CURRENT_TIMESTAMP")},
					{Name: "interview_date", Type: TypeText},
					{Name: "interview_time", Type: TypeText},
					{Name: "interview_place", Type: TypeText},
					{Name: "posted_by", Type: TypeText},
					{Name: "application_date", Type: TypeText},
					{Name: "job_status", Type: TypeText, Default: strptr("Open")},
				},
			},
			{
				Name: "applications",
				Columns: []ColumnSpec{
					{Name: "job_id", Type: TypeInteger, ForeignKey: &ForeignKey{Table: "jobs"}},
					{Name: "student_id", Type: TypeInteger, ForeignKey: &ForeignKey{Table: "users"}},
					{Name: "student_name", Type: TypeText},
					{Name: "email", Type: TypeText},
					{Name: "city", Type: TypeText},
					{Name: "job_preference", Type: TypeText},
					{Name: "application_date", Type: TypeText},
					{Name: "resume", Type: TypeText},
					{Name: "company", Type: TypeText},
					{Name: "job_title", Type: TypeText},
				},
			},
		},
	}
}
