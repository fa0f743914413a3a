package services

import (
	"testing"
)

// 任意操作序列后，同一用户都不能同时出现在赞成和反对两边
func TestVoteMutualExclusion(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "author")
	voter := createUser(t, "voter")
	article := createArticle(t, author, "exclusion")
	password := createPassword(t, article, author, "hunter2")

	steps := []struct {
		name string
		op   func(userID, passwordID uint) error
	}{
		{"approve", Approve},
		{"disapprove", Disapprove},
		{"approve again", Approve},
		{"undisapprove", Undisapprove},
		{"disapprove again", Disapprove},
		{"unapprove", Unapprove},
	}
	for _, step := range steps {
		if err := step.op(voter.ID, password.ID); err != nil {
			t.Fatalf("%s failed: %v", step.name, err)
		}
		approvals, err := Approvals(password.ID)
		if err != nil {
			t.Fatalf("Approvals failed: %v", err)
		}
		disapprovals, err := Disapprovals(password.ID)
		if err != nil {
			t.Fatalf("Disapprovals failed: %v", err)
		}
		if containsID(approvals, voter.ID) && containsID(disapprovals, voter.ID) {
			t.Fatalf("after %s: voter is in both approvals and disapprovals", step.name)
		}
	}
}

func TestApproveIdempotent(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "author")
	voter := createUser(t, "voter")
	article := createArticle(t, author, "idempotent")
	password := createPassword(t, article, author, "letmein")

	if err := Approve(voter.ID, password.ID); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if err := Approve(voter.ID, password.ID); err != nil {
		t.Fatalf("second approve failed: %v", err)
	}

	approvals, _ := Approvals(password.ID)
	if len(approvals) != 1 {
		t.Errorf("expected 1 approval, got %d", len(approvals))
	}
	rating, err := Rating(password.ID)
	if err != nil {
		t.Fatalf("Rating failed: %v", err)
	}
	if rating != 1 {
		t.Errorf("expected rating 1, got %d", rating)
	}
}

// Scenario: 赞成后改投反对 → 赞成集合为空，反对集合只剩该用户，评分 -1
func TestDisapproveOverridesApprove(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "author")
	voter := createUser(t, "voter")
	article := createArticle(t, author, "override")
	password := createPassword(t, article, author, "swordfish")

	if err := Approve(voter.ID, password.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := Disapprove(voter.ID, password.ID); err != nil {
		t.Fatalf("disapprove failed: %v", err)
	}

	approvals, _ := Approvals(password.ID)
	if len(approvals) != 0 {
		t.Errorf("expected empty approvals, got %v", approvals)
	}
	disapprovals, _ := Disapprovals(password.ID)
	if len(disapprovals) != 1 || disapprovals[0] != voter.ID {
		t.Errorf("expected disapprovals == [%d], got %v", voter.ID, disapprovals)
	}
	rating, _ := Rating(password.ID)
	if rating != -1 {
		t.Errorf("expected rating -1, got %d", rating)
	}
}

// Unapprove 只清赞成票，已有的反对票原样保留
func TestUnapproveLeavesDisapprovalIntact(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "author")
	voter := createUser(t, "voter")
	article := createArticle(t, author, "partial")
	password := createPassword(t, article, author, "qwerty")

	if err := Disapprove(voter.ID, password.ID); err != nil {
		t.Fatalf("disapprove failed: %v", err)
	}
	if err := Unapprove(voter.ID, password.ID); err != nil {
		t.Fatalf("unapprove failed: %v", err)
	}

	if state := VoteState(voter.ID, password.ID); state != -1 {
		t.Errorf("expected vote state -1, got %d", state)
	}
	rating, _ := Rating(password.ID)
	if rating != -1 {
		t.Errorf("expected rating -1, got %d", rating)
	}
}

// 评分在每次转移后都等于 |赞成| - |反对|
func TestRatingMatchesSets(t *testing.T) {
	setupTestDB(t)
	author := createUser(t, "author")
	article := createArticle(t, author, "rating")
	password := createPassword(t, article, author, "correcthorse")

	voters := []uint{
		createUser(t, "u1").ID,
		createUser(t, "u2").ID,
		createUser(t, "u3").ID,
	}
	ops := []func(userID, passwordID uint) error{Approve, Approve, Disapprove}
	for i, op := range ops {
		if err := op(voters[i], password.ID); err != nil {
			t.Fatalf("op %d failed: %v", i, err)
		}
		approvals, _ := Approvals(password.ID)
		disapprovals, _ := Disapprovals(password.ID)
		rating, _ := Rating(password.ID)
		if rating != len(approvals)-len(disapprovals) {
			t.Fatalf("rating %d != |approvals| %d - |disapprovals| %d",
				rating, len(approvals), len(disapprovals))
		}
	}

	rating, _ := Rating(password.ID)
	if rating != 1 {
		t.Errorf("expected final rating 1, got %d", rating)
	}
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
