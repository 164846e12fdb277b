// Package adapters はprojectsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskboard_backend/internal/feature/projects/domain/entity"
	"taskboard_backend/internal/feature/projects/usecase"
	taskentity "taskboard_backend/internal/feature/tasks/domain/entity"
	"taskboard_backend/internal/shared/ownership"
)

// projectPostgres はProjectRepositoryインターフェースのPostgres実装です。
type projectPostgres struct {
	db *gorm.DB
}

// projectPostgresがProjectRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ProjectRepository = (*projectPostgres)(nil)

// NewProjectPostgres は指定されたgorm.DB接続でprojectPostgresの新しいインスタンスを生成します。
func NewProjectPostgres(db *gorm.DB) *projectPostgres {
	return &projectPostgres{db: db}
}

// Create はプロジェクトをデータベースに追加します。
func (r *projectPostgres) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// ListByOwner は所有者のプロジェクトを作成日時順で返します。
func (r *projectPostgres) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Project, error) {
	var projects []entity.Project
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// findOwnedTx はプロジェクトを取得し所有権を検証します。
// 不在と所有権なしはどちらもErrProjectNotFoundになります。
func (r *projectPostgres) findOwnedTx(tx *gorm.DB, userID, projectID uint) (*entity.Project, error) {
	var project entity.Project
	if err := tx.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProjectNotFound
		}
		return nil, err
	}
	if err := ownership.Authorize(userID, project.OwnerID); err != nil {
		return nil, usecase.ErrProjectNotFound
	}
	return &project, nil
}

// FindOwned は所有権を検証した上でプロジェクトを取得します。
func (r *projectPostgres) FindOwned(ctx context.Context, userID, projectID uint) (*entity.Project, error) {
	return r.findOwnedTx(r.db.WithContext(ctx), userID, projectID)
}

// UpdateFields は名前・説明の部分更新を行います。OwnerIDは変更しません。
func (r *projectPostgres) UpdateFields(ctx context.Context, userID, projectID uint, name, description *string) (*entity.Project, error) {
	var updated *entity.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := r.findOwnedTx(tx, userID, projectID)
		if err != nil {
			return err
		}

		fields := map[string]interface{}{}
		if name != nil {
			fields["name"] = *name
			project.Name = *name
		}
		if description != nil {
			fields["description"] = *description
			project.Description = *description
		}
		if len(fields) > 0 {
			if err := tx.Model(project).Updates(fields).Error; err != nil {
				return err
			}
		}
		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCascade はプロジェクトとその全タスクを単一トランザクションで削除します。
// 子（タスク）→親（プロジェクト）の順で削除します。
func (r *projectPostgres) DeleteCascade(ctx context.Context, userID, projectID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := r.findOwnedTx(tx, userID, projectID)
		if err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).
			Delete(&taskentity.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
}
