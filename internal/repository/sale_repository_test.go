package repository

import "testing"

func TestAllocateInvoiceSeq(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)

	for want := 1; want <= 3; want++ {
		seq, err := repo.AllocateInvoiceSeq(1, "20260831")
		if err != nil {
			t.Fatalf("allocate %d failed: %v", want, err)
		}
		if seq != want {
			t.Fatalf("seq want %d, got %d", want, seq)
		}
	}
}

func TestAllocateInvoiceSeqIsolatedPerShopAndDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)

	if _, err := repo.AllocateInvoiceSeq(1, "20260831"); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if _, err := repo.AllocateInvoiceSeq(1, "20260831"); err != nil {
		t.Fatalf("allocate failed: %v", err)
	}

	seq, err := repo.AllocateInvoiceSeq(2, "20260831")
	if err != nil {
		t.Fatalf("allocate other shop failed: %v", err)
	}
	if seq != 1 {
		t.Fatalf("other shop should start at 1, got %d", seq)
	}

	seq, err = repo.AllocateInvoiceSeq(1, "20260901")
	if err != nil {
		t.Fatalf("allocate next day failed: %v", err)
	}
	if seq != 1 {
		t.Fatalf("next day should start at 1, got %d", seq)
	}
}

func TestAllocateInvoiceSeqRejectsBadParams(t *testing.T) {
	db := newTestDB(t)
	repo := NewSaleRepository(db)

	if _, err := repo.AllocateInvoiceSeq(0, "20260831"); err == nil {
		t.Fatalf("zero shop id should fail")
	}
	if _, err := repo.AllocateInvoiceSeq(1, ""); err == nil {
		t.Fatalf("empty day should fail")
	}
}
