package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // 토큰 폐기됨
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // 이메일 중복
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"     // 사용자명 중복
	AuthWrongPassword      = "AUTH_WRONG_PASSWORD"      // 현재 비밀번호 불일치

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden  = "AUTHZ_FORBIDDEN"   // 접근 권한 없음
	AuthzAuthorOnly = "AUTHZ_AUTHOR_ONLY" // 작성자 또는 관리자만 가능

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // 잘못된 입력
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // 잘못된 ID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // 잘못된 형식
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // 범위 초과
	ValidationTooShort      = "VALIDATION_TOO_SHORT"      // 너무 짧음
	ValidationRequired      = "VALIDATION_REQUIRED"       // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 레시피 (RECIPE_) ====================
	RecipeNotFound            = "RECIPE_NOT_FOUND"            // 레시피 없음
	RecipeInvalidCookTime     = "RECIPE_INVALID_COOK_TIME"    // 조리 시간 1분 미만
	RecipeIngredientsRequired = "RECIPE_INGREDIENTS_REQUIRED" // 재료 필수
	RecipeDuplicateIngredient = "RECIPE_DUPLICATE_INGREDIENT" // 재료 중복
	RecipeInvalidQuantity     = "RECIPE_INVALID_QUANTITY"     // 수량 1 미만
	RecipeInvalidImage        = "RECIPE_INVALID_IMAGE"        // 이미지 형식 오류
	IngredientNotFound        = "INGREDIENT_NOT_FOUND"        // 재료 없음
	TagNotFound               = "TAG_NOT_FOUND"               // 태그 없음

	// ==================== 즐겨찾기/장바구니 (ANNOTATION_) ====================
	FavoriteAlreadyExists = "FAVORITE_ALREADY_EXISTS" // 이미 즐겨찾기에 있음
	FavoriteNotFound      = "FAVORITE_NOT_FOUND"      // 즐겨찾기에 없음
	CartAlreadyExists     = "CART_ALREADY_EXISTS"     // 이미 장바구니에 있음
	CartNotFound          = "CART_NOT_FOUND"          // 장바구니에 없음

	// ==================== 구독 (FOLLOW_) ====================
	UserNotFound        = "USER_NOT_FOUND"        // 사용자 없음
	FollowSelfForbidden = "FOLLOW_SELF_FORBIDDEN" // 자기 자신 구독 불가
	FollowAlreadyExists = "FOLLOW_ALREADY_EXISTS" // 이미 구독 중
	FollowNotFound      = "FOLLOW_NOT_FOUND"      // 구독하지 않음

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalStorageError  = "INTERNAL_STORAGE_ERROR"  // 이미지 저장소 오류
)
