package s3

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSourceDir はアップロード元画像の既定ディレクトリ
const DefaultSourceDir = "~/.gemini/antigravity/brain/a857ed2d-a1f1-4098-ac5f-2ebc19bd3027"

// DefaultContentType はアップロード時に設定する既定の Content-Type
const DefaultContentType = "image/png"

// DefaultAssetManifest はゲームアセットの既定アップロード一覧
func DefaultAssetManifest() []UploadItem {
	return []UploadItem{
		{Source: "uploaded_image_0_1768966084275.png", Key: "wizard_idle.png"},
		{Source: "uploaded_image_1_1768966084275.png", Key: "wizard_walk.png"},
		{Source: "uploaded_image_2_1768966084275.png", Key: "boss_idle.png"},
		{Source: "uploaded_image_3_1768966084275.png", Key: "boss_walk.png"},
		{Source: "uploaded_image_4_1768966084275.png", Key: "bullet.png"},
	}
}

// DefaultPresetItem はプリセット画像の既定アップロード対象
func DefaultPresetItem() UploadItem {
	return UploadItem{Source: "uploaded_image_1768966849067.png", Key: "presets/green_warrior.png"}
}

// LoadManifest はYAMLファイルからアップロード一覧を読み込む
//
//	- source: uploaded_image_0.png
//	  key: wizard_idle.png
func LoadManifest(path string) ([]UploadItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("マニフェスト '%s' の読み込みに失敗: %w", path, err)
	}

	var items []UploadItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("マニフェスト '%s' の解析に失敗: %w", path, err)
	}
	for i, item := range items {
		if item.Source == "" || item.Key == "" {
			return nil, fmt.Errorf("マニフェスト '%s' の%d件目に source または key がありません", path, i+1)
		}
	}
	return items, nil
}
