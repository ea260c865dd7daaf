package own

import "testing"

func TestSlotLifecycle(t *testing.T) {
	var slot Slot[widget]
	log := &destroyLog{}

	if !slot.IsNull() {
		t.Fatal("zero Slot should be null")
	}

	slot.Reset(newWidget(10, log))
	if slot.IsNull() || slot.Get().id != 10 {
		t.Fatalf("Get() = %v, want widget 10", slot.Get())
	}

	slot.Reset(newWidget(20, log))
	if len(log.ids) != 1 || log.ids[0] != 10 {
		t.Fatalf("destroy log = %v, want [10]", log.ids)
	}
	if slot.Get().id != 20 {
		t.Fatalf("Get().id = %d, want 20", slot.Get().id)
	}

	slot.Reset(slot.Get())
	if log.count() != 1 {
		t.Error("resetting to the held instance destroyed it")
	}

	slot.Reset(nil)
	if !slot.IsNull() {
		t.Error("Reset(nil) should empty the slot")
	}
	if len(log.ids) != 2 || log.ids[1] != 20 {
		t.Fatalf("destroy log = %v, want [10 20]", log.ids)
	}
}

func TestSlotPlainType(t *testing.T) {
	var slot Slot[plain]
	slot.Reset(&plain{n: 1})
	slot.Reset(nil)
	if !slot.IsNull() {
		t.Error("slot should be empty")
	}
}
