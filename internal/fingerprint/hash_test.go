package fingerprint

import "testing"

func TestHashIsDeterministic(t *testing.T) {
	ua := "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	a := Hash(ua, "1920x1080", "Europe/Paris", "fr-FR", "ANGLE (NVIDIA GeForce RTX 3080)")
	b := Hash(ua, "1920x1080", "Europe/Paris", "fr-FR", "ANGLE (NVIDIA GeForce RTX 3080)")
	if a != b {
		t.Fatalf("aggregate hash is not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("hash length %d, want 64", len(a))
	}
}

func TestHashSensitiveToEveryField(t *testing.T) {
	base := Hash("ua", "1920x1080", "UTC", "en-US", "renderer")
	variants := []string{
		Hash("ua2", "1920x1080", "UTC", "en-US", "renderer"),
		Hash("ua", "1280x720", "UTC", "en-US", "renderer"),
		Hash("ua", "1920x1080", "Asia/Tokyo", "en-US", "renderer"),
		Hash("ua", "1920x1080", "UTC", "ja-JP", "renderer"),
		Hash("ua", "1920x1080", "UTC", "en-US", "other"),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d did not change the hash", i)
		}
	}
}
