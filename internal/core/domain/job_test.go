package domain

import (
	"reflect"
	"testing"
)

func TestJobStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to JobStatus
		want     bool
	}{
		{JobOpen, JobInProgress, true},
		{JobOpen, JobCancelled, true},
		{JobOpen, JobCompleted, false},
		{JobInProgress, JobCompleted, true},
		{JobInProgress, JobCancelled, true},
		{JobInProgress, JobOpen, false},
		{JobCompleted, JobCancelled, false},
		{JobCancelled, JobOpen, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{" React ", "", "PHP", "React", "  "})
	if !reflect.DeepEqual(got, []string{"React", "PHP"}) {
		t.Fatalf("unexpected skills: %v", got)
	}
}

func TestJobUpdate_Apply_SameStatusAccepted(t *testing.T) {
	j := Job{Status: JobCompleted}
	s := JobCompleted
	if err := (JobUpdate{Status: &s}).Apply(&j); err != nil {
		t.Fatalf("re-setting the current status should be accepted: %v", err)
	}
}

func TestProfileUpdate_Apply_LeavesNilFields(t *testing.T) {
	u := User{Name: "Sarah", Bio: "old", Role: RoleFreelancer}
	name := "Sarah D."
	ProfileUpdate{Name: &name}.Apply(&u)
	if u.Name != name || u.Bio != "old" || u.Role != RoleFreelancer {
		t.Fatalf("unexpected user after update: %+v", u)
	}
}

func TestUser_Clone_Deep(t *testing.T) {
	rate := 10.0
	u := &User{Skills: []string{"Go"}, HourlyRate: &rate}
	c := u.Clone()
	c.Skills[0] = "Rust"
	*c.HourlyRate = 99
	if u.Skills[0] != "Go" || *u.HourlyRate != 10 {
		t.Fatalf("clone shares state with original")
	}
}
