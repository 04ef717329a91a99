package event

import "testing"

func prepareMem(t *testing.T, namespace string) Service {
	s := MemService()

	if err := s.Teardown(namespace); err != nil {
		t.Fatal(err)
	}

	return s
}

func TestMemServiceDelete(t *testing.T) {
	testServiceDelete(prepareMem, t)
}

func TestMemServicePut(t *testing.T) {
	testServicePut(prepareMem, t)
}

func TestMemServicePutInvalid(t *testing.T) {
	testServicePutInvalid(prepareMem, t)
}

func TestMemServiceQuery(t *testing.T) {
	testServiceQuery(prepareMem, t)
}
